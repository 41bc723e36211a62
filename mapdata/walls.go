package mapdata

import (
	"image"
	"math"
)

// WallPickThreshold is the pixel distance under which a click selects a wall.
const WallPickThreshold = 10.0

// WallSegment is a line-of-sight obstruction in grid-local pixels.
type WallSegment struct {
	X1, Y1, X2, Y2 int
}

// Rebase returns w moved by (-dx, -dy).
func (w WallSegment) Rebase(dx, dy int) WallSegment {
	return WallSegment{X1: w.X1 - dx, Y1: w.Y1 - dy, X2: w.X2 - dx, Y2: w.Y2 - dy}
}

// WallSet is the ordered list of walls on one level.
type WallSet []WallSegment

// Clone returns an independent copy. The result is never nil so that a
// level always owns a wall list.
func (ws WallSet) Clone() WallSet {
	out := make(WallSet, len(ws))
	copy(out, ws)
	return out
}

// Equal reports whether both sets hold the same segments in order.
func (ws WallSet) Equal(other WallSet) bool {
	if len(ws) != len(other) {
		return false
	}
	for i := range ws {
		if ws[i] != other[i] {
			return false
		}
	}
	return true
}

// Nearest returns the index of the newest wall closer than threshold to
// (px, py).
func (ws WallSet) Nearest(px, py int, threshold float64) (int, bool) {
	for i := len(ws) - 1; i >= 0; i-- {
		if DistanceToSegment(float64(px), float64(py), ws[i]) < threshold {
			return i, true
		}
	}
	return -1, false
}

// RemoveAt returns ws without the segment at i.
func (ws WallSet) RemoveAt(i int) WallSet {
	if i < 0 || i >= len(ws) {
		return ws
	}
	out := make(WallSet, 0, len(ws)-1)
	out = append(out, ws[:i]...)
	return append(out, ws[i+1:]...)
}

// SnapPoint moves a grid-local pixel to the nearest grid intersection.
// Exact halves round to the even multiple.
func SnapPoint(px, py, tileSize int) image.Point {
	snap := func(v int) int {
		return int(math.RoundToEven(float64(v)/float64(tileSize))) * tileSize
	}
	return image.Pt(snap(px), snap(py))
}

// DistanceToSegment is the euclidean distance from (px, py) to the closest
// point of w.
func DistanceToSegment(px, py float64, w WallSegment) float64 {
	x1, y1 := float64(w.X1), float64(w.Y1)
	dx := float64(w.X2) - x1
	dy := float64(w.Y2) - y1
	if dx == 0 && dy == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
