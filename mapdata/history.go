package mapdata

// DefaultHistoryLimit is the undo depth used when none is configured.
const DefaultHistoryLimit = 30

// Snapshot is a deep copy of one level's grid and walls.
type Snapshot struct {
	Grid  *Grid
	Walls WallSet
}

func takeSnapshot(g *Grid, walls WallSet) Snapshot {
	return Snapshot{Grid: g.Clone(), Walls: walls.Clone()}
}

// History holds bounded undo and redo stacks for a single editing session.
type History struct {
	limit     int
	undoStack []Snapshot
	redoStack []Snapshot
}

// NewHistory returns an empty history keeping at most limit undo entries.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

func (h *History) Limit() int { return h.limit }

// Record stores the pre-edit state. Call it right before mutating the level.
// The redo stack is discarded.
func (h *History) Record(g *Grid, walls WallSet) {
	h.undoStack = pushBounded(h.undoStack, takeSnapshot(g, walls), h.limit)
	h.redoStack = nil
}

// Undo returns the most recent recorded state and moves the current state
// onto the redo stack. With nothing to undo it returns its inputs and false.
func (h *History) Undo(g *Grid, walls WallSet) (*Grid, WallSet, bool) {
	n := len(h.undoStack)
	if n == 0 {
		return g, walls, false
	}
	snap := h.undoStack[n-1]
	h.undoStack = h.undoStack[:n-1]
	h.redoStack = pushBounded(h.redoStack, takeSnapshot(g, walls), h.limit)
	return snap.Grid, snap.Walls, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(g *Grid, walls WallSet) (*Grid, WallSet, bool) {
	n := len(h.redoStack)
	if n == 0 {
		return g, walls, false
	}
	snap := h.redoStack[n-1]
	h.redoStack = h.redoStack[:n-1]
	h.undoStack = pushBounded(h.undoStack, takeSnapshot(g, walls), h.limit)
	return snap.Grid, snap.Walls, true
}

// Clear drops both stacks. Used on level switch and project load.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

func (h *History) UndoLen() int { return len(h.undoStack) }
func (h *History) RedoLen() int { return len(h.redoStack) }

func pushBounded(stack []Snapshot, snap Snapshot, limit int) []Snapshot {
	stack = append(stack, snap)
	if len(stack) > limit {
		// drop oldest
		stack = append(stack[:0:0], stack[len(stack)-limit:]...)
	}
	return stack
}
