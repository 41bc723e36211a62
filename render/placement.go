package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/dungeonmap/mapdata"
)

// ErrEmptyMap is returned when an export is attempted on a level without
// any placed tile.
var ErrEmptyMap = errors.New("empty map")

// ImageBackground is the fill of plain image exports.
var ImageBackground = color.RGBA{20, 20, 20, 255}

// Source supplies full-size asset images and their footprints.
type Source interface {
	Image(key string) (image.Image, bool)
	Footprint(key string) (int, bool)
}

// Rasterizer composites placements and encodes the result.
type Rasterizer interface {
	Render(items []Placement, w, h int) (image.Image, error)
	EncodePNG(img image.Image) ([]byte, error)
}

// Placements turns draw items into positioned images. Each image is centred
// on its footprint anchor; (offsetX, offsetY) is subtracted from grid pixels
// so callers can rebase the output canvas. Unknown keys are skipped.
func Placements(items []mapdata.DrawItem, src Source, tileSize, offsetX, offsetY int) []Placement {
	out := make([]Placement, 0, len(items))
	for _, item := range items {
		img, ok := src.Image(item.Tile.Key)
		if !ok || img == nil {
			continue
		}
		footprint, ok := src.Footprint(item.Tile.Key)
		if !ok || footprint < 1 {
			footprint = 1
		}
		anchor := mapdata.AnchorOffset(footprint, tileSize)
		cx := item.X*tileSize - offsetX + anchor
		cy := item.Y*tileSize - offsetY + anchor

		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		if item.Tile.Rotation.QuarterTurns()%2 == 1 {
			w, h = h, w
		}
		out = append(out, Placement{
			Key:      item.Tile.Key,
			Image:    img,
			X:        cx - w/2,
			Y:        cy - h/2,
			Rotation: item.Tile.Rotation,
		})
	}
	return out
}

// RenderBounds draws the tiles inside b onto a canvas of exactly b's size
// plus margin tiles on each side.
func RenderBounds(g *mapdata.Grid, b mapdata.Bounds, src Source, rz Rasterizer, margin int) (image.Image, error) {
	ts := g.TileSize()
	pad := margin * ts
	w := b.Width()*ts + 2*pad
	h := b.Height()*ts + 2*pad
	items := Placements(g.DrawOrderIn(b), src, ts, b.MinX*ts-pad, b.MinY*ts-pad)
	return rz.Render(items, w, h)
}

// ExportImage writes the level as a flat PNG with a one-tile margin. The
// ".png" suffix is appended when missing. The written path is returned.
func ExportImage(path string, g *mapdata.Grid, src Source, rz Rasterizer) (string, error) {
	b, ok := g.Bounds()
	if !ok {
		return "", ErrEmptyMap
	}
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path += ".png"
	}
	img, err := RenderBounds(g, b, src, rz, 1)
	if err != nil {
		return "", err
	}
	data, err := rz.EncodePNG(img)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("render: write %s: %w", path, err)
	}
	return path, nil
}
