package mapdata

import "testing"

func TestNewGridDimensions(t *testing.T) {
	cases := []struct {
		name       string
		w, h       int
		rows, cols int
	}{
		{"exact", 640, 320, 5, 10},
		{"truncates", 700, 350, 5, 10},
		{"smaller_than_tile", 10, 10, 1, 1},
		{"zero", 0, 0, 1, 1},
		{"negative", -100, 200, 3, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewGrid(c.w, c.h, 64)
			if g.Rows() != c.rows || g.Cols() != c.cols {
				t.Fatalf("expected %dx%d, got %dx%d", c.rows, c.cols, g.Rows(), g.Cols())
			}
			for y := 0; y < g.Rows(); y++ {
				for x := 0; x < g.Cols(); x++ {
					if len(g.Cell(x, y)) != 0 {
						t.Fatalf("cell (%d,%d) should start empty", x, y)
					}
				}
			}
		})
	}
}

func TestGridPlaceAndRemove(t *testing.T) {
	g := NewGrid(256, 256, 64)
	a := NewTile("a", 0, LayerGround)
	b := NewTile("b", 90, LayerObjects)
	c := NewTile("c", 180, LayerTokens)

	for _, tile := range []PlacedTile{a, b, c} {
		if !g.Place(1, 2, tile) {
			t.Fatalf("Place should accept in-bounds cell")
		}
	}
	if g.Place(4, 0, a) || g.Place(-1, 0, a) {
		t.Fatalf("Place should reject out-of-bounds cells")
	}

	removed, ok := g.RemoveAt(1, 2, 1)
	if !ok || removed != b {
		t.Fatalf("expected to remove b, got %+v (ok=%v)", removed, ok)
	}
	if got := g.Cell(1, 2); !got.Equal(Cell{a, c}) {
		t.Fatalf("expected [a c], got %+v", got)
	}
	if _, ok := g.RemoveAt(1, 2, 5); ok {
		t.Fatalf("invalid index should be a no-op")
	}
	if _, ok := g.RemoveAt(9, 9, 0); ok {
		t.Fatalf("out-of-bounds remove should be a no-op")
	}
	if got := g.Cell(1, 2); len(got) != 2 {
		t.Fatalf("failed removes must not change the stack, got %+v", got)
	}
}

func TestGridCellReturnsCopy(t *testing.T) {
	g := NewGrid(128, 128, 64)
	g.Place(0, 0, NewTile("a", 0, LayerGround))
	c := g.Cell(0, 0)
	c[0] = NewTile("mutated", 0, LayerGround)
	if g.Cell(0, 0)[0].Key != "a" {
		t.Fatalf("Cell must not expose the internal stack")
	}
}

func TestGridResizePreservesOverlap(t *testing.T) {
	cases := []struct {
		name       string
		w, h       int
		rows, cols int
	}{
		{"shrink", 128, 192, 3, 2},
		{"grow", 640, 640, 10, 10},
		{"mixed", 512, 64, 1, 8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewGrid(320, 320, 64)
			for y := 0; y < g.Rows(); y++ {
				for x := 0; x < g.Cols(); x++ {
					g.Place(x, y, NewTile("floor", 0, LayerGround))
					if (x+y)%2 == 0 {
						g.Place(x, y, NewTile("chest", 90, LayerObjects))
					}
				}
			}

			out := g.Resize(c.w, c.h)
			if out.Rows() != c.rows || out.Cols() != c.cols {
				t.Fatalf("expected %dx%d, got %dx%d", c.rows, c.cols, out.Rows(), out.Cols())
			}
			for y := 0; y < out.Rows(); y++ {
				for x := 0; x < out.Cols(); x++ {
					inOverlap := y < min(g.Rows(), out.Rows()) && x < min(g.Cols(), out.Cols())
					got := out.Cell(x, y)
					if inOverlap && !got.Equal(g.Cell(x, y)) {
						t.Fatalf("cell (%d,%d) not preserved: %+v", x, y, got)
					}
					if !inOverlap && len(got) != 0 {
						t.Fatalf("cell (%d,%d) outside overlap should be empty", x, y)
					}
				}
			}

			// the copy must be independent of the source
			out.Place(0, 0, NewTile("token", 0, LayerTokens))
			if len(g.Cell(0, 0)) == len(out.Cell(0, 0)) {
				t.Fatalf("resized grid shares storage with the original")
			}
		})
	}
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(640, 640, 64)
	if _, ok := g.Bounds(); ok {
		t.Fatalf("empty grid should have no bounds")
	}

	// row 2 col 3, row 5 col 1
	g.Place(3, 2, NewTile("a", 0, LayerGround))
	g.Place(1, 5, NewTile("b", 0, LayerObjects))

	b, ok := g.Bounds()
	if !ok {
		t.Fatalf("expected bounds")
	}
	want := Bounds{MinX: 1, MinY: 2, MaxX: 3, MaxY: 5}
	if b != want {
		t.Fatalf("expected %+v, got %+v", want, b)
	}
	if b.Width() != 3 || b.Height() != 4 {
		t.Fatalf("unexpected size %dx%d", b.Width(), b.Height())
	}

	g.RemoveAt(3, 2, 0)
	g.RemoveAt(1, 5, 0)
	if _, ok := g.Bounds(); ok {
		t.Fatalf("bounds should disappear once the grid is empty again")
	}
}

func TestGridDrawOrderIsLayerMajor(t *testing.T) {
	g := NewGrid(192, 64, 64)
	g.Place(0, 0, NewTile("token0", 0, LayerTokens))
	g.Place(0, 0, NewTile("ground0", 0, LayerGround))
	g.Place(1, 0, NewTile("object1", 0, LayerObjects))
	g.Place(2, 0, NewTile("ground2a", 0, LayerGround))
	g.Place(2, 0, NewTile("ground2b", 0, LayerGround))

	var keys []string
	for _, item := range g.DrawOrder() {
		keys = append(keys, item.Tile.Key)
	}
	want := []string{"ground0", "ground2a", "ground2b", "object1", "token0"}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}

	items := g.DrawOrderIn(Bounds{MinX: 1, MinY: 0, MaxX: 2, MaxY: 0})
	if len(items) != 3 || items[0].Tile.Key != "ground2a" || items[2].Tile.Key != "object1" {
		t.Fatalf("unexpected restricted draw order: %+v", items)
	}
}

func TestGridCellAt(t *testing.T) {
	g := NewGrid(256, 128, 64)
	cases := []struct {
		px, py int
		x, y   int
		ok     bool
	}{
		{0, 0, 0, 0, true},
		{63, 63, 0, 0, true},
		{64, 65, 1, 1, true},
		{255, 127, 3, 1, true},
		{256, 0, 4, 0, false},
		{-1, 0, 0, 0, false},
	}
	for _, c := range cases {
		x, y, ok := g.CellAt(c.px, c.py)
		if ok != c.ok || (ok && (x != c.x || y != c.y)) {
			t.Errorf("CellAt(%d,%d) = (%d,%d,%v), want (%d,%d,%v)", c.px, c.py, x, y, ok, c.x, c.y, c.ok)
		}
	}
}

func TestNormalizeRotation(t *testing.T) {
	cases := []struct {
		in   int
		want Rotation
	}{
		{0, 0}, {90, 90}, {270, 270}, {360, 0}, {-90, 270}, {450, 90}, {100, 90},
	}
	for _, c := range cases {
		if got := NormalizeRotation(c.in); got != c.want {
			t.Errorf("NormalizeRotation(%d) = %d, want %d", c.in, got, c.want)
		}
	}
	if Rotation(0).CW() != 270 || Rotation(90).CW() != 0 {
		t.Fatalf("CW should turn a quarter clockwise")
	}
	if NewTile("x", 0, Layer(9)).Layer != LayerGround {
		t.Fatalf("unknown layers should resolve to ground")
	}
}
