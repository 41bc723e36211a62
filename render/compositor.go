package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/milk9111/dungeonmap/mapdata"
)

// Placement is one image to composite, positioned by its top-left corner
// in canvas pixels after rotation.
type Placement struct {
	Key      string
	Image    image.Image
	X, Y     int
	Rotation mapdata.Rotation
}

// Compositor draws placements onto a fresh canvas. Rotated bitmaps are kept
// in a cost-bounded cache keyed by asset key and angle.
type Compositor struct {
	Background color.Color
	cache      *ristretto.Cache[string, *image.RGBA]
}

// NewCompositor returns a compositor that fills canvases with bg.
func NewCompositor(bg color.Color) (*Compositor, error) {
	cache, err := ristretto.NewCache[string, *image.RGBA](&ristretto.Config[string, *image.RGBA]{
		NumCounters: 10000,
		MaxCost:     64 << 20, // bytes of pixel data
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("render: new cache: %w", err)
	}
	return &Compositor{Background: bg, cache: cache}, nil
}

// Reset drops every cached bitmap. Call it when the asset catalog reloads.
func (c *Compositor) Reset() {
	c.cache.Clear()
}

func (c *Compositor) Close() {
	c.cache.Close()
}

// Render composites items in order onto a w x h canvas.
func (c *Compositor) Render(items []Placement, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: invalid canvas %dx%d", w, h)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	if c.Background != nil {
		draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: c.Background}, image.Point{}, draw.Src)
	}
	for _, p := range items {
		if p.Image == nil {
			continue
		}
		src := c.rotated(p)
		b := src.Bounds()
		dst := image.Rect(p.X, p.Y, p.X+b.Dx(), p.Y+b.Dy())
		draw.Draw(canvas, dst, src, b.Min, draw.Over)
	}
	return canvas, nil
}

// EncodePNG encodes img as PNG bytes.
func (c *Compositor) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Compositor) rotated(p Placement) image.Image {
	turns := p.Rotation.QuarterTurns()
	if turns == 0 {
		return p.Image
	}
	if p.Key == "" {
		return Rotate(p.Image, p.Rotation)
	}
	cacheKey := p.Key + "|" + strconv.Itoa(int(p.Rotation))
	if img, ok := c.cache.Get(cacheKey); ok {
		return img
	}
	img := Rotate(p.Image, p.Rotation)
	c.cache.Set(cacheKey, img, int64(len(img.Pix)))
	return img
}

// Rotate returns src turned counter-clockwise by r.
func Rotate(src image.Image, r mapdata.Rotation) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	turns := r.QuarterTurns()
	var dst *image.RGBA
	if turns%2 == 1 {
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := src.At(b.Min.X+x, b.Min.Y+y)
			switch turns {
			case 0:
				dst.Set(x, y, px)
			case 1:
				dst.Set(y, w-1-x, px)
			case 2:
				dst.Set(w-1-x, h-1-y, px)
			case 3:
				dst.Set(h-1-y, x, px)
			}
		}
	}
	return dst
}
