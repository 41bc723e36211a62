package mapdata

// Layer controls draw pass order and erase/hit-test filtering.
type Layer uint8

const (
	LayerGround Layer = iota
	LayerObjects
	LayerTokens
)

// Layers lists every layer in draw order.
var Layers = []Layer{LayerGround, LayerObjects, LayerTokens}

func (l Layer) String() string {
	switch l {
	case LayerGround:
		return "Ground"
	case LayerObjects:
		return "Objects"
	case LayerTokens:
		return "Tokens"
	default:
		return "Unknown"
	}
}

// Valid reports whether l is one of the known layers.
func (l Layer) Valid() bool {
	return l <= LayerTokens
}

// LayerFromInt maps a persisted layer number to a Layer. Unknown values
// fall back to LayerGround.
func LayerFromInt(v int) Layer {
	if v < 0 || v > int(LayerTokens) {
		return LayerGround
	}
	return Layer(v)
}

// Rotation is a counter-clockwise rotation in degrees, one of 0, 90, 180, 270.
type Rotation int

// NormalizeRotation folds any angle in degrees into {0, 90, 180, 270}.
func NormalizeRotation(deg int) Rotation {
	d := ((deg % 360) + 360) % 360
	return Rotation(d - d%90)
}

// CW returns r turned a quarter turn clockwise.
func (r Rotation) CW() Rotation {
	return NormalizeRotation(int(r) - 90)
}

// QuarterTurns returns the number of counter-clockwise quarter turns.
func (r Rotation) QuarterTurns() int {
	return int(NormalizeRotation(int(r))) / 90
}

// PlacedTile is one asset instance in a cell stack. Edits replace the value
// instead of mutating it.
type PlacedTile struct {
	Key      string
	Rotation Rotation
	Layer    Layer
}

// NewTile builds a PlacedTile with the rotation normalised and an unknown
// layer resolved to LayerGround.
func NewTile(key string, deg int, layer Layer) PlacedTile {
	if !layer.Valid() {
		layer = LayerGround
	}
	return PlacedTile{Key: key, Rotation: NormalizeRotation(deg), Layer: layer}
}

// Cell is an ordered stack of tiles; index 0 is the bottom.
type Cell []PlacedTile

// Clone returns an independent copy of c. Empty cells clone to nil.
func (c Cell) Clone() Cell {
	if len(c) == 0 {
		return nil
	}
	out := make(Cell, len(c))
	copy(out, c)
	return out
}

// Equal reports whether two stacks hold the same tiles in the same order.
func (c Cell) Equal(other Cell) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}
