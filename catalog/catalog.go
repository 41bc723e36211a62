package catalog

import (
	"image"
	"regexp"
	"sort"
	"strconv"

	"golang.org/x/image/draw"
)

// BaseCategory names assets found directly in the asset root.
const BaseCategory = "Base Tiles"

var footprintPattern = regexp.MustCompile(`(\d+)x(\d+)`)

// ParseFootprint extracts the footprint multiplier from a file name such as
// "table_2x2.png". Names without an NxM group are single-tile assets.
func ParseFootprint(filename string) int {
	m := footprintPattern.FindStringSubmatch(filename)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Asset is one loaded tile image.
type Asset struct {
	Key       string
	Category  string
	Path      string
	Footprint int
	Full      image.Image // footprint*tileSize square
	Thumb     image.Image // tileSize square
}

// Catalog maps asset keys to their footprint and images. It is read-only
// once loaded; reloads build a new Catalog.
type Catalog struct {
	tileSize   int
	assets     map[string]*Asset
	categories map[string][]string
}

// New returns an empty catalog for the given tile size.
func New(tileSize int) *Catalog {
	return &Catalog{
		tileSize:   tileSize,
		assets:     make(map[string]*Asset),
		categories: make(map[string][]string),
	}
}

func (c *Catalog) TileSize() int { return c.tileSize }
func (c *Catalog) Len() int      { return len(c.assets) }

// Add registers src under key, scaling it to its footprint and to a
// thumbnail. A later Add with the same key replaces the earlier asset.
func (c *Catalog) Add(key, category string, footprint int, src image.Image) *Asset {
	if footprint < 1 {
		footprint = 1
	}
	if old, ok := c.assets[key]; ok {
		c.removeFromCategory(old.Category, key)
	}
	a := &Asset{
		Key:       key,
		Category:  category,
		Footprint: footprint,
		Full:      scale(src, footprint*c.tileSize, draw.CatmullRom),
		Thumb:     scale(src, c.tileSize, draw.ApproxBiLinear),
	}
	c.assets[key] = a
	c.categories[category] = append(c.categories[category], key)
	return a
}

func (c *Catalog) removeFromCategory(category, key string) {
	keys := c.categories[category]
	for i, k := range keys {
		if k == key {
			c.categories[category] = append(keys[:i:i], keys[i+1:]...)
			break
		}
	}
	if len(c.categories[category]) == 0 {
		delete(c.categories, category)
	}
}

// Asset returns the asset registered under key.
func (c *Catalog) Asset(key string) (*Asset, bool) {
	a, ok := c.assets[key]
	return a, ok
}

// Footprint returns the footprint multiplier of key.
func (c *Catalog) Footprint(key string) (int, bool) {
	a, ok := c.assets[key]
	if !ok {
		return 0, false
	}
	return a.Footprint, true
}

// Image returns the full-size image of key.
func (c *Catalog) Image(key string) (image.Image, bool) {
	a, ok := c.assets[key]
	if !ok {
		return nil, false
	}
	return a.Full, true
}

// Thumbnail returns the tile-sized preview of key.
func (c *Catalog) Thumbnail(key string) (image.Image, bool) {
	a, ok := c.assets[key]
	if !ok {
		return nil, false
	}
	return a.Thumb, true
}

// Keys returns every asset key sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.assets))
	for k := range c.assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Categories returns the category names sorted, base tiles first.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if (names[i] == BaseCategory) != (names[j] == BaseCategory) {
			return names[i] == BaseCategory
		}
		return names[i] < names[j]
	})
	return names
}

// Category returns the keys in a category in load order.
func (c *Catalog) Category(name string) []string {
	return append([]string(nil), c.categories[name]...)
}

// Sizes returns a copy of the footprint table.
func (c *Catalog) Sizes() Sizes {
	out := make(Sizes, len(c.assets))
	for k, a := range c.assets {
		out[k] = a.Footprint
	}
	return out
}

// Sizes is a plain footprint table usable wherever only sizes are needed.
type Sizes map[string]int

// Footprint implements mapdata.FootprintLookup.
func (s Sizes) Footprint(key string) (int, bool) {
	v, ok := s[key]
	return v, ok
}

func scale(src image.Image, side int, scaler draw.Scaler) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	if src == nil {
		return dst
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
