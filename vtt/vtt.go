// Package vtt exports a level as a Universal VTT (.dd2vtt) document: the
// rendered map as an embedded PNG plus wall geometry for line of sight.
package vtt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/milk9111/dungeonmap/mapdata"
	"github.com/milk9111/dungeonmap/render"
)

const (
	Ext    = ".dd2vtt"
	Format = "dd2vtt"

	imagePrefix = "data:image/png;base64,"
)

var (
	// ErrEmptyMap is returned when the level has no placed tile.
	ErrEmptyMap = render.ErrEmptyMap
	// ErrIO marks failures writing the document.
	ErrIO = errors.New("vtt i/o")
)

// Background fills the embedded bitmap behind the tiles.
var Background = color.RGBA{10, 10, 15, 255}

// Rasterizer is satisfied by *render.Compositor.
type Rasterizer = render.Rasterizer

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Resolution struct {
	MapOrigin     Point `json:"map_origin"`
	MapSize       Point `json:"map_size"`
	PixelsPerGrid int   `json:"pixels_per_grid"`
}

type Line struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

type Document struct {
	Format      string     `json:"format"`
	Resolution  Resolution `json:"resolution"`
	LineOfSight []Line     `json:"line_of_sight"`
	Portals     []any      `json:"portals"`
	Lights      []any      `json:"lights"`
	Image       string     `json:"image"`
}

// Export renders the occupied bounds of g without margin and rebases walls
// onto the same origin.
func Export(g *mapdata.Grid, walls mapdata.WallSet, src render.Source, rz Rasterizer) (*Document, error) {
	b, ok := g.Bounds()
	if !ok {
		return nil, ErrEmptyMap
	}
	ts := g.TileSize()
	offX, offY := b.MinX*ts, b.MinY*ts

	img, err := render.RenderBounds(g, b, src, rz, 0)
	if err != nil {
		return nil, fmt.Errorf("vtt: render: %w", err)
	}
	data, err := rz.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("vtt: %w", err)
	}

	lines := make([]Line, 0, len(walls))
	for _, w := range walls {
		r := w.Rebase(offX, offY)
		lines = append(lines, Line{
			P1: Point{X: r.X1, Y: r.Y1},
			P2: Point{X: r.X2, Y: r.Y2},
		})
	}

	return &Document{
		Format: Format,
		Resolution: Resolution{
			MapOrigin:     Point{},
			MapSize:       Point{X: b.Width() * ts, Y: b.Height() * ts},
			PixelsPerGrid: ts,
		},
		LineOfSight: lines,
		Portals:     []any{},
		Lights:      []any{},
		Image:       imagePrefix + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// DecodeImage returns the PNG bytes embedded in doc.
func DecodeImage(doc *Document) ([]byte, error) {
	if !strings.HasPrefix(doc.Image, imagePrefix) {
		return nil, fmt.Errorf("vtt: image is not a png data uri")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(doc.Image, imagePrefix))
}

// WriteFile writes doc as JSON, appending Ext when missing, and returns the
// final path.
func WriteFile(path string, doc *Document) (string, error) {
	if !strings.HasSuffix(path, Ext) {
		path += Ext
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("vtt: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	return path, nil
}

// ExportFile exports g and writes it to path. Nothing is written when the
// export fails.
func ExportFile(path string, g *mapdata.Grid, walls mapdata.WallSet, src render.Source, rz Rasterizer) (string, error) {
	doc, err := Export(g, walls, src, rz)
	if err != nil {
		return "", err
	}
	return WriteFile(path, doc)
}
