// Package editor holds the editing session behind the map editor window:
// tool modes, pointer handling, levels, undo and file operations. It has no
// dependency on the windowing layer; cmd/editor feeds it grid-local pointer
// positions and draws what it exposes.
package editor

import (
	"image"
	"time"

	"github.com/milk9111/dungeonmap/mapdata"
	"github.com/milk9111/dungeonmap/render"
)

type Tool int

const (
	ToolPlace Tool = iota
	ToolErase
	ToolWall
)

func (t Tool) String() string {
	switch t {
	case ToolPlace:
		return "Place"
	case ToolErase:
		return "Erase"
	case ToolWall:
		return "Wall"
	}
	return "Unknown"
}

// Assets is the tile catalog as seen by the session.
type Assets interface {
	render.Source
	Categories() []string
	Category(name string) []string
}

// Options configures a new session. Width and Height are the map viewport
// in pixels.
type Options struct {
	Width, Height     int
	TileSize          int
	HistoryLimit      int
	WallPickThreshold float64
	ProjectDir        string

	// ImageRaster renders plain PNG exports, VTTRaster the bitmap embedded
	// in .dd2vtt files.
	ImageRaster render.Rasterizer
	VTTRaster   render.Rasterizer
}

type Session struct {
	opts    Options
	assets  Assets
	store   *mapdata.LevelStore
	level   int
	history *mapdata.History

	tool       Tool
	layer      mapdata.Layer
	category   string
	selected   string
	angle      mapdata.Rotation
	toolAngles map[string]mapdata.Rotation
	dragging   bool
	wallStart  *image.Point
	immersion  bool

	modal      Modal
	nameAction NameAction
	nameText   string
	files      []string

	now         time.Time
	status      string
	statusUntil time.Time
}

// New returns a session with level 0 created at the viewport size.
func New(assets Assets, opts Options) *Session {
	if opts.TileSize <= 0 {
		opts.TileSize = 64
	}
	if opts.WallPickThreshold <= 0 {
		opts.WallPickThreshold = mapdata.WallPickThreshold
	}
	if opts.ProjectDir == "" {
		opts.ProjectDir = "."
	}
	s := &Session{
		opts:       opts,
		assets:     assets,
		store:      mapdata.NewLevelStore(opts.Width, opts.Height, opts.TileSize),
		history:    mapdata.NewHistory(opts.HistoryLimit),
		toolAngles: make(map[string]mapdata.Rotation),
	}
	s.store.GetOrCreate(0)
	s.resetCategory()
	return s
}

func (s *Session) current() *mapdata.LevelData {
	return s.store.GetOrCreate(s.level)
}

func (s *Session) Grid() *mapdata.Grid        { return s.current().Grid }
func (s *Session) Walls() mapdata.WallSet     { return s.current().Walls }
func (s *Session) Level() int                 { return s.level }
func (s *Session) Store() *mapdata.LevelStore { return s.store }
func (s *Session) History() *mapdata.History  { return s.history }
func (s *Session) Tool() Tool                 { return s.tool }
func (s *Session) Layer() mapdata.Layer       { return s.layer }
func (s *Session) Immersion() bool            { return s.immersion }

func (s *Session) SetTool(t Tool) {
	s.tool = t
	s.wallStart = nil
}

func (s *Session) SetLayer(l mapdata.Layer) {
	if l.Valid() {
		s.layer = l
	}
}

// SetAssets swaps the catalog after a reload. The selection is kept even if
// its key disappeared; unknown keys are simply not drawn.
func (s *Session) SetAssets(a Assets) {
	s.assets = a
	s.resetCategory()
}

func (s *Session) Assets() Assets { return s.assets }

func (s *Session) resetCategory() {
	if s.assets == nil {
		s.category = ""
		return
	}
	cats := s.assets.Categories()
	for _, c := range cats {
		if c == s.category {
			return
		}
	}
	s.category = ""
	if len(cats) > 0 {
		s.category = cats[0]
	}
}

// Category returns the palette category on display.
func (s *Session) Category() string { return s.category }

// Palette lists the keys of the current category.
func (s *Session) Palette() []string {
	if s.assets == nil || s.category == "" {
		return nil
	}
	return s.assets.Category(s.category)
}

// SelectAsset picks key from the palette with its remembered rotation and
// switches to the place tool.
func (s *Session) SelectAsset(key string) {
	s.selected = key
	s.angle = s.toolAngles[key]
	s.tool = ToolPlace
	s.dragging = true
}

// ClearSelection drops the carried asset.
func (s *Session) ClearSelection() {
	s.selected = ""
	s.angle = 0
	s.dragging = false
}

// Carried reports the asset that the next placement would drop.
func (s *Session) Carried() (string, mapdata.Rotation, bool) {
	return s.selected, s.angle, s.selected != ""
}

// Dragging reports whether the pointer is held with a carried asset.
func (s *Session) Dragging() bool { return s.dragging && s.selected != "" }

// RotateSelection turns the carried asset a quarter turn clockwise and
// remembers the new angle for that key.
func (s *Session) RotateSelection() {
	if s.selected == "" {
		return
	}
	s.angle = s.angle.CW()
	s.toolAngles[s.selected] = s.toolAngles[s.selected].CW()
}

// WallStart returns the snapped start of the wall being drawn.
func (s *Session) WallStart() (image.Point, bool) {
	if s.wallStart == nil {
		return image.Point{}, false
	}
	return *s.wallStart, true
}

func (s *Session) inView(px, py int) bool {
	w, h := s.Grid().PixelSize()
	return px >= 0 && py >= 0 && px < w && py < h
}

// editsBlocked reports whether a modal swallows pointer input. An open
// category menu is closed by the click, which then goes through.
func (s *Session) editsBlocked() bool {
	switch s.modal {
	case ModalNameInput, ModalFileMenu:
		return true
	case ModalCategoryMenu:
		s.modal = ModalNone
	}
	return s.immersion
}

// hitAt finds the topmost tile of the current layer under the pointer.
func (s *Session) hitAt(px, py int) (mapdata.Hit, bool) {
	if s.assets == nil {
		return mapdata.Hit{}, false
	}
	layer := s.layer
	return mapdata.HitTest(s.Grid(), s.assets, px, py, &layer)
}

// PointerDown handles a primary button press at grid-local pixels.
func (s *Session) PointerDown(px, py int) {
	if s.editsBlocked() || !s.inView(px, py) {
		return
	}
	lvl := s.current()
	ts := s.opts.TileSize

	switch s.tool {
	case ToolWall:
		p := mapdata.SnapPoint(px, py, ts)
		s.wallStart = &p

	case ToolErase:
		if i, ok := lvl.Walls.Nearest(px, py, s.opts.WallPickThreshold); ok {
			s.history.Record(lvl.Grid, lvl.Walls)
			lvl.Walls = lvl.Walls.RemoveAt(i)
			return
		}
		if hit, ok := s.hitAt(px, py); ok {
			s.history.Record(lvl.Grid, lvl.Walls)
			lvl.Grid.RemoveAt(hit.X, hit.Y, hit.Index)
		}

	case ToolPlace:
		if hit, ok := s.hitAt(px, py); ok {
			s.history.Record(lvl.Grid, lvl.Walls)
			lvl.Grid.RemoveAt(hit.X, hit.Y, hit.Index)
			s.selected = hit.Tile.Key
			s.angle = hit.Tile.Rotation
			s.dragging = true
			return
		}
		if s.selected != "" {
			s.dragging = true
		}
	}
}

// PointerUp handles the release of the primary button at grid-local pixels.
func (s *Session) PointerUp(px, py int) {
	s.dragging = false
	if s.modal == ModalNameInput || s.modal == ModalFileMenu {
		return
	}

	lvl := s.current()
	ts := s.opts.TileSize

	switch s.tool {
	case ToolWall:
		start := s.wallStart
		s.wallStart = nil
		if start == nil || s.immersion || !s.inView(px, py) {
			return
		}
		end := mapdata.SnapPoint(px, py, ts)
		s.history.Record(lvl.Grid, lvl.Walls)
		lvl.Walls = append(lvl.Walls, mapdata.WallSegment{X1: start.X, Y1: start.Y, X2: end.X, Y2: end.Y})

	case ToolPlace:
		if s.selected == "" || s.immersion {
			return
		}
		x, y, ok := lvl.Grid.CellAt(px, py)
		if !ok {
			return
		}
		s.history.Record(lvl.Grid, lvl.Walls)
		lvl.Grid.Place(x, y, mapdata.NewTile(s.selected, int(s.angle), s.layer))
	}
}

// Undo restores the previous state of the current level.
func (s *Session) Undo() bool {
	lvl := s.current()
	g, w, ok := s.history.Undo(lvl.Grid, lvl.Walls)
	if !ok {
		s.setStatus("Nothing to undo", ShortStatusDuration)
		return false
	}
	s.store.Put(s.level, &mapdata.LevelData{Grid: g, Walls: w})
	s.setStatus("Undone", ShortStatusDuration)
	return true
}

func (s *Session) Redo() bool {
	lvl := s.current()
	g, w, ok := s.history.Redo(lvl.Grid, lvl.Walls)
	if !ok {
		s.setStatus("Nothing to redo", ShortStatusDuration)
		return false
	}
	s.store.Put(s.level, &mapdata.LevelData{Grid: g, Walls: w})
	s.setStatus("Redone", ShortStatusDuration)
	return true
}

// SwitchLevel moves delta floors up (positive) or down.
func (s *Session) SwitchLevel(delta int) {
	s.SetLevel(s.level + delta)
}

// SetLevel makes index the edited level, creating it at the viewport size
// when new. History does not span levels and is cleared.
func (s *Session) SetLevel(index int) {
	s.level = index
	s.store.GetOrCreate(index)
	s.history.Clear()
	s.wallStart = nil
}

// Resize follows a window resize: the current level is re-gridded to the
// new viewport and levels created later use it too. Ignored in immersion
// mode.
func (s *Session) Resize(w, h int) {
	if s.immersion {
		return
	}
	if dw, dh := s.store.DefaultSize(); dw == w && dh == h {
		return
	}
	s.store.SetDefaultSize(w, h)
	lvl := s.current()
	lvl.Grid = lvl.Grid.Resize(w, h)
}

// SetImmersion hides or shows the editing chrome. While on, pointer edits
// and resizes are ignored.
func (s *Session) SetImmersion(on bool) {
	s.immersion = on
	if on {
		s.modal = ModalNone
		s.wallStart = nil
		s.dragging = false
	}
}
