package mapdata

import "image"

// FootprintLookup resolves an asset key to its footprint multiplier.
type FootprintLookup interface {
	Footprint(key string) (int, bool)
}

// Hit identifies a tile found by HitTest.
type Hit struct {
	X, Y  int
	Index int
	Tile  PlacedTile
}

// AnchorOffset is the distance from a cell's top-left corner to the centre
// of a tile drawn there. Odd footprints centre on their origin cell, even
// ones are pushed one full tile towards the bottom-right.
func AnchorOffset(footprint, tileSize int) int {
	if footprint%2 == 0 {
		return tileSize
	}
	return tileSize / 2
}

// TileRect returns the on-grid pixel square covered by a tile of the given
// footprint placed on cell (x, y).
func TileRect(x, y, footprint, tileSize int) image.Rectangle {
	if footprint < 1 {
		footprint = 1
	}
	side := footprint * tileSize
	anchor := AnchorOffset(footprint, tileSize)
	left := x*tileSize + anchor - side/2
	top := y*tileSize + anchor - side/2
	return image.Rect(left, top, left+side, top+side)
}

// HitTest finds the tile drawn under grid-local pixel (px, py). Cells are
// scanned from the bottom-right towards the top-left and stacks from the top
// down, so the topmost, last-placed tile wins. A nil target matches every
// layer. Keys unknown to fp are skipped.
func HitTest(g *Grid, fp FootprintLookup, px, py int, target *Layer) (Hit, bool) {
	pt := image.Pt(px, py)
	for y := g.rows - 1; y >= 0; y-- {
		for x := g.cols - 1; x >= 0; x-- {
			stack := g.cells[y][x]
			for i := len(stack) - 1; i >= 0; i-- {
				t := stack[i]
				if target != nil && t.Layer != *target {
					continue
				}
				size, ok := fp.Footprint(t.Key)
				if !ok {
					continue
				}
				if pt.In(TileRect(x, y, size, g.tileSize)) {
					return Hit{X: x, Y: y, Index: i, Tile: t}, true
				}
			}
		}
	}
	return Hit{}, false
}
