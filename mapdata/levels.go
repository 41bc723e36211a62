package mapdata

import "sort"

// LevelData is the grid and wall list of one floor.
type LevelData struct {
	Grid  *Grid
	Walls WallSet
}

// LevelStore maps level indices (possibly negative) to their data. Levels
// are created explicitly through GetOrCreate at the store's default size.
type LevelStore struct {
	tileSize    int
	pixelWidth  int
	pixelHeight int
	levels      map[int]*LevelData
}

// NewLevelStore returns an empty store whose new levels cover
// pixelWidth x pixelHeight.
func NewLevelStore(pixelWidth, pixelHeight, tileSize int) *LevelStore {
	return &LevelStore{
		tileSize:    tileSize,
		pixelWidth:  pixelWidth,
		pixelHeight: pixelHeight,
		levels:      make(map[int]*LevelData),
	}
}

func (s *LevelStore) TileSize() int { return s.tileSize }

// DefaultSize returns the pixel area used for newly created levels.
func (s *LevelStore) DefaultSize() (int, int) {
	return s.pixelWidth, s.pixelHeight
}

// SetDefaultSize changes the pixel area used for levels created from now on.
func (s *LevelStore) SetDefaultSize(pixelWidth, pixelHeight int) {
	s.pixelWidth = pixelWidth
	s.pixelHeight = pixelHeight
}

// Get returns the level at index without creating it.
func (s *LevelStore) Get(index int) (*LevelData, bool) {
	lvl, ok := s.levels[index]
	return lvl, ok
}

// GetOrCreate returns the level at index, creating an empty grid and wall
// list at the default size when absent. Missing halves of an existing entry
// are filled in the same way.
func (s *LevelStore) GetOrCreate(index int) *LevelData {
	lvl, ok := s.levels[index]
	if !ok {
		lvl = &LevelData{}
		s.levels[index] = lvl
	}
	if lvl.Grid == nil {
		lvl.Grid = NewGrid(s.pixelWidth, s.pixelHeight, s.tileSize)
	}
	if lvl.Walls == nil {
		lvl.Walls = WallSet{}
	}
	return lvl
}

// Put stores data at index, replacing any existing level.
func (s *LevelStore) Put(index int, data *LevelData) {
	if data == nil {
		delete(s.levels, index)
		return
	}
	if data.Walls == nil {
		data.Walls = WallSet{}
	}
	s.levels[index] = data
}

// Indices returns every stored level index in ascending order.
func (s *LevelStore) Indices() []int {
	out := make([]int, 0, len(s.levels))
	for idx := range s.levels {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

func (s *LevelStore) Len() int { return len(s.levels) }
