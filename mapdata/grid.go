package mapdata

import "image"

// Grid is a rectangular rows x cols matrix of cell stacks.
type Grid struct {
	tileSize int
	rows     int
	cols     int
	cells    [][]Cell
}

// Bounds is an inclusive box of cell coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the number of columns covered by b.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of rows covered by b.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// DrawItem is one entry of the draw-order list handed to renderers.
type DrawItem struct {
	X, Y  int
	Index int
	Tile  PlacedTile
}

// gridDims converts a pixel area to cell counts. Sizes smaller than one tile
// are clamped so a grid always has at least one row and column.
func gridDims(pixelWidth, pixelHeight, tileSize int) (cols, rows int) {
	if pixelWidth < tileSize {
		pixelWidth = tileSize
	}
	if pixelHeight < tileSize {
		pixelHeight = tileSize
	}
	cols = pixelWidth / tileSize
	rows = pixelHeight / tileSize
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// NewGrid creates an empty grid covering pixelWidth x pixelHeight.
func NewGrid(pixelWidth, pixelHeight, tileSize int) *Grid {
	if tileSize < 1 {
		tileSize = 1
	}
	cols, rows := gridDims(pixelWidth, pixelHeight, tileSize)
	return newGridCells(cols, rows, tileSize)
}

func newGridCells(cols, rows, tileSize int) *Grid {
	cells := make([][]Cell, rows)
	for y := range cells {
		cells[y] = make([]Cell, cols)
	}
	return &Grid{tileSize: tileSize, rows: rows, cols: cols, cells: cells}
}

func (g *Grid) Rows() int     { return g.rows }
func (g *Grid) Cols() int     { return g.cols }
func (g *Grid) TileSize() int { return g.tileSize }

// PixelSize returns the grid extent in pixels.
func (g *Grid) PixelSize() (int, int) {
	return g.cols * g.tileSize, g.rows * g.tileSize
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.cols && y < g.rows
}

// CellAt converts grid-local pixels to a cell coordinate.
func (g *Grid) CellAt(px, py int) (int, int, bool) {
	if px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y := px/g.tileSize, py/g.tileSize
	return x, y, g.InBounds(x, y)
}

// Cell returns a copy of the stack at (x, y), or nil when out of bounds.
func (g *Grid) Cell(x, y int) Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[y][x].Clone()
}

// SetCell replaces the stack at (x, y) with a copy of c.
func (g *Grid) SetCell(x, y int, c Cell) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y][x] = c.Clone()
	return true
}

// Place puts t on top of the stack at (x, y). Out-of-bounds edits are ignored.
func (g *Grid) Place(x, y int, t PlacedTile) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y][x] = append(g.cells[y][x], t)
	return true
}

// RemoveAt removes the stack entry at index, shifting the entries above it
// down by one.
func (g *Grid) RemoveAt(x, y, index int) (PlacedTile, bool) {
	if !g.InBounds(x, y) {
		return PlacedTile{}, false
	}
	stack := g.cells[y][x]
	if index < 0 || index >= len(stack) {
		return PlacedTile{}, false
	}
	removed := stack[index]
	stack = append(stack[:index], stack[index+1:]...)
	if len(stack) == 0 {
		stack = nil
	}
	g.cells[y][x] = stack
	return removed, true
}

// Resize returns a new grid for the given pixel area. Cells in the overlap
// of both grids are copied by value; everything else starts empty and cells
// that fall outside the new bounds are dropped.
func (g *Grid) Resize(pixelWidth, pixelHeight int) *Grid {
	cols, rows := gridDims(pixelWidth, pixelHeight, g.tileSize)
	out := newGridCells(cols, rows, g.tileSize)
	for y := 0; y < min(rows, g.rows); y++ {
		for x := 0; x < min(cols, g.cols); x++ {
			out.cells[y][x] = g.cells[y][x].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	out := newGridCells(g.cols, g.rows, g.tileSize)
	for y := range g.cells {
		for x := range g.cells[y] {
			out.cells[y][x] = g.cells[y][x].Clone()
		}
	}
	return out
}

// Equal reports whether both grids have the same shape and stacks.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.rows != other.rows || g.cols != other.cols || g.tileSize != other.tileSize {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if !g.cells[y][x].Equal(other.cells[y][x]) {
				return false
			}
		}
	}
	return true
}

// Bounds returns the tight box around every occupied cell. ok is false when
// the grid holds no tiles.
func (g *Grid) Bounds() (b Bounds, ok bool) {
	b = Bounds{MinX: g.cols, MinY: g.rows, MaxX: -1, MaxY: -1}
	for y := range g.cells {
		for x := range g.cells[y] {
			if len(g.cells[y][x]) == 0 {
				continue
			}
			b.MinX = min(b.MinX, x)
			b.MaxX = max(b.MaxX, x)
			b.MinY = min(b.MinY, y)
			b.MaxY = max(b.MaxY, y)
			ok = true
		}
	}
	if !ok {
		return Bounds{}, false
	}
	return b, true
}

// Occupied calls fn for every non-empty cell in row-major order. fn receives
// the live stack and must not retain or modify it.
func (g *Grid) Occupied(fn func(x, y int, c Cell)) {
	for y := range g.cells {
		for x := range g.cells[y] {
			if len(g.cells[y][x]) > 0 {
				fn(x, y, g.cells[y][x])
			}
		}
	}
}

// TileCount returns the number of placed tiles across all cells.
func (g *Grid) TileCount() int {
	n := 0
	g.Occupied(func(_, _ int, c Cell) { n += len(c) })
	return n
}

// DrawOrder lists every tile layer-major: all ground tiles of all cells,
// then objects, then tokens. Within a cell the stack order is kept.
func (g *Grid) DrawOrder() []DrawItem {
	return g.drawOrderIn(image.Rect(0, 0, g.cols, g.rows))
}

// DrawOrderIn is DrawOrder restricted to the cells inside b.
func (g *Grid) DrawOrderIn(b Bounds) []DrawItem {
	return g.drawOrderIn(image.Rect(b.MinX, b.MinY, b.MaxX+1, b.MaxY+1))
}

func (g *Grid) drawOrderIn(r image.Rectangle) []DrawItem {
	r = r.Intersect(image.Rect(0, 0, g.cols, g.rows))
	var items []DrawItem
	for _, layer := range Layers {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				for i, t := range g.cells[y][x] {
					if t.Layer == layer {
						items = append(items, DrawItem{X: x, Y: y, Index: i, Tile: t})
					}
				}
			}
		}
	}
	return items
}
