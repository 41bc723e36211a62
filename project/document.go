package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/milk9111/dungeonmap/mapdata"
)

var (
	// ErrMalformedProject marks documents that cannot be parsed or do not
	// have the expected structure.
	ErrMalformedProject = errors.New("malformed project")
	// ErrIO marks read and write failures.
	ErrIO = errors.New("project i/o")
)

// Document is the on-disk project layout. Map keys are level indices
// formatted as decimal strings.
type Document struct {
	Levels map[string][]CellRecord `json:"levels"`
	Walls  map[string][]WallRecord `json:"walls"`
}

type CellRecord struct {
	X     int          `json:"x"`
	Y     int          `json:"y"`
	Stack []TileRecord `json:"stack"`
}

type TileRecord struct {
	Key   string `json:"key"`
	Angle int    `json:"angle"`
	Layer int    `json:"layer"`
}

type WallRecord struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func tileRecord(t mapdata.PlacedTile) TileRecord {
	return TileRecord{Key: t.Key, Angle: int(t.Rotation), Layer: int(t.Layer)}
}

func (r TileRecord) tile() mapdata.PlacedTile {
	return mapdata.NewTile(r.Key, r.Angle, mapdata.LayerFromInt(r.Layer))
}

// Encode captures every level of store. Occupied cells are listed in
// row-major order with their full stacks.
func Encode(store *mapdata.LevelStore) *Document {
	doc := &Document{
		Levels: make(map[string][]CellRecord),
		Walls:  make(map[string][]WallRecord),
	}
	for _, idx := range store.Indices() {
		lvl, _ := store.Get(idx)
		key := strconv.Itoa(idx)

		cells := []CellRecord{}
		if lvl.Grid != nil {
			lvl.Grid.Occupied(func(x, y int, c mapdata.Cell) {
				stack := make([]TileRecord, len(c))
				for i, t := range c {
					stack[i] = tileRecord(t)
				}
				cells = append(cells, CellRecord{X: x, Y: y, Stack: stack})
			})
		}
		doc.Levels[key] = cells

		walls := make([]WallRecord, len(lvl.Walls))
		for i, w := range lvl.Walls {
			walls[i] = WallRecord{X1: w.X1, Y1: w.Y1, X2: w.X2, Y2: w.Y2}
		}
		doc.Walls[key] = walls
	}
	return doc
}

// Decode rebuilds a level store at the given pixel size. Every level gets a
// fresh grid at that size, so cells saved outside the new bounds are dropped.
func Decode(doc *Document, pixelWidth, pixelHeight, tileSize int) (*mapdata.LevelStore, error) {
	store := mapdata.NewLevelStore(pixelWidth, pixelHeight, tileSize)
	if doc == nil {
		return store, nil
	}
	for key, cells := range doc.Levels {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: level key %q", ErrMalformedProject, key)
		}
		lvl := store.GetOrCreate(idx)
		for _, cr := range cells {
			stack := make(mapdata.Cell, len(cr.Stack))
			for i, tr := range cr.Stack {
				stack[i] = tr.tile()
			}
			lvl.Grid.SetCell(cr.X, cr.Y, stack)
		}
	}
	for key, walls := range doc.Walls {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: wall level key %q", ErrMalformedProject, key)
		}
		lvl := store.GetOrCreate(idx)
		for _, w := range walls {
			lvl.Walls = append(lvl.Walls, mapdata.WallSegment{X1: w.X1, Y1: w.Y1, X2: w.X2, Y2: w.Y2})
		}
	}
	return store, nil
}

// Marshal encodes doc as indented JSON.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedProject, err)
	}
	return data, nil
}

// rawCell accepts both the stacked cell format and the oldest one where a
// cell carried a single key/angle pair.
type rawCell struct {
	X     *int      `json:"x"`
	Y     *int      `json:"y"`
	Stack []rawTile `json:"stack"`
	Key   *string   `json:"key"`
	Angle *int      `json:"angle"`
	Layer *int      `json:"layer"`
}

type rawTile struct {
	Key   *string `json:"key"`
	Angle *int    `json:"angle"`
	Layer *int    `json:"layer"`
}

func (t rawTile) record() (TileRecord, error) {
	if t.Key == nil {
		return TileRecord{}, fmt.Errorf("%w: tile without key", ErrMalformedProject)
	}
	r := TileRecord{Key: *t.Key}
	if t.Angle != nil {
		r.Angle = *t.Angle
	}
	if t.Layer != nil {
		r.Layer = *t.Layer
	}
	return r, nil
}

// Unmarshal parses any of the three project file generations: a document
// with "levels" and "walls", a bare map of levels without walls, and cells
// holding a single key/angle pair instead of a stack.
func Unmarshal(data []byte) (*Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedProject, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedProject)
	}

	levelsRaw := top
	var wallsRaw json.RawMessage
	if raw, ok := top["levels"]; ok {
		levelsRaw = nil
		if err := json.Unmarshal(raw, &levelsRaw); err != nil {
			return nil, fmt.Errorf("%w: levels: %w", ErrMalformedProject, err)
		}
		wallsRaw = top["walls"]
	}

	doc := &Document{
		Levels: make(map[string][]CellRecord, len(levelsRaw)),
		Walls:  make(map[string][]WallRecord),
	}
	for key, raw := range levelsRaw {
		var cells []rawCell
		if err := json.Unmarshal(raw, &cells); err != nil {
			return nil, fmt.Errorf("%w: level %s: %w", ErrMalformedProject, key, err)
		}
		records := make([]CellRecord, 0, len(cells))
		for _, rc := range cells {
			if rc.X == nil || rc.Y == nil {
				return nil, fmt.Errorf("%w: level %s: cell without coordinates", ErrMalformedProject, key)
			}
			cr := CellRecord{X: *rc.X, Y: *rc.Y}
			switch {
			case rc.Stack != nil:
				for _, rt := range rc.Stack {
					tr, err := rt.record()
					if err != nil {
						return nil, fmt.Errorf("level %s cell (%d,%d): %w", key, cr.X, cr.Y, err)
					}
					cr.Stack = append(cr.Stack, tr)
				}
			case rc.Key != nil:
				tr, _ := rawTile{Key: rc.Key, Angle: rc.Angle, Layer: rc.Layer}.record()
				cr.Stack = []TileRecord{tr}
			}
			records = append(records, cr)
		}
		doc.Levels[key] = records
	}

	if len(wallsRaw) > 0 && string(wallsRaw) != "null" {
		if err := json.Unmarshal(wallsRaw, &doc.Walls); err != nil {
			return nil, fmt.Errorf("%w: walls: %w", ErrMalformedProject, err)
		}
	}
	return doc, nil
}
