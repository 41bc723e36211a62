package vtt

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/dungeonmap/catalog"
	"github.com/milk9111/dungeonmap/mapdata"
	"github.com/milk9111/dungeonmap/render"
)

const tile = 16

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New(tile)
	img := image.NewRGBA(image.Rect(0, 0, tile, tile))
	for y := 0; y < tile; y++ {
		for x := 0; x < tile; x++ {
			img.Set(x, y, color.RGBA{200, 10, 10, 255})
		}
	}
	cat.Add("floor", catalog.BaseCategory, 1, img)
	return cat
}

func testCompositor(t *testing.T) *render.Compositor {
	t.Helper()
	comp, err := render.NewCompositor(Background)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(comp.Close)
	return comp
}

func TestExportEmptyMap(t *testing.T) {
	g := mapdata.NewGrid(160, 160, tile)
	path := filepath.Join(t.TempDir(), "empty")

	_, err := ExportFile(path, g, nil, testCatalog(t), testCompositor(t))
	if !errors.Is(err, ErrEmptyMap) {
		t.Fatalf("expected ErrEmptyMap, got %v", err)
	}
	if _, err := os.Stat(path + Ext); !os.IsNotExist(err) {
		t.Fatalf("no file should exist, stat err: %v", err)
	}
}

func TestExportDocument(t *testing.T) {
	g := mapdata.NewGrid(160, 160, tile)
	g.Place(2, 3, mapdata.NewTile("floor", 0, mapdata.LayerGround))
	g.Place(4, 4, mapdata.NewTile("floor", 90, mapdata.LayerGround))
	g.Place(5, 5, mapdata.NewTile("unknown", 0, mapdata.LayerObjects))
	walls := mapdata.WallSet{{X1: 32, Y1: 48, X2: 96, Y2: 48}}

	doc, err := Export(g, walls, testCatalog(t), testCompositor(t))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if doc.Format != Format {
		t.Fatalf("unexpected format %q", doc.Format)
	}
	// bounds x 2..5, y 3..5
	wantSize := Point{X: 4 * tile, Y: 3 * tile}
	if doc.Resolution.MapSize != wantSize || doc.Resolution.MapOrigin != (Point{}) {
		t.Fatalf("unexpected resolution %+v", doc.Resolution)
	}
	if doc.Resolution.PixelsPerGrid != tile {
		t.Fatalf("unexpected pixels per grid %d", doc.Resolution.PixelsPerGrid)
	}

	if len(doc.LineOfSight) != 1 {
		t.Fatalf("expected one wall, got %d", len(doc.LineOfSight))
	}
	want := Line{P1: Point{X: 0, Y: 0}, P2: Point{X: 64, Y: 0}}
	if doc.LineOfSight[0] != want {
		t.Fatalf("expected rebased wall %+v, got %+v", want, doc.LineOfSight[0])
	}

	data, err := DecodeImage(doc)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("embedded image is not a png: %v", err)
	}
	if img.Bounds().Dx() != wantSize.X || img.Bounds().Dy() != wantSize.Y {
		t.Fatalf("image size %v does not match map size", img.Bounds())
	}
	got := color.RGBAModel.Convert(img.At(1, 1)).(color.RGBA)
	if got != (color.RGBA{200, 10, 10, 255}) {
		t.Fatalf("first tile should sit at the origin, got %v", got)
	}
	got = color.RGBAModel.Convert(img.At(tile+1, 1)).(color.RGBA)
	if got != Background {
		t.Fatalf("empty cell should be background, got %v", got)
	}
}

func TestWriteFile(t *testing.T) {
	g := mapdata.NewGrid(64, 64, tile)
	g.Place(0, 0, mapdata.NewTile("floor", 0, mapdata.LayerGround))

	path, err := ExportFile(filepath.Join(t.TempDir(), "crypt"), g, nil, testCatalog(t), testCompositor(t))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(path) != Ext {
		t.Fatalf("expected %s suffix, got %s", Ext, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"format", "resolution", "line_of_sight", "portals", "lights", "image"} {
		if _, ok := generic[key]; !ok {
			t.Errorf("missing %q", key)
		}
	}
	for _, key := range []string{"line_of_sight", "portals", "lights"} {
		if _, ok := generic[key].([]any); !ok {
			t.Errorf("%q should be a list, got %v", key, generic[key])
		}
	}

	if _, err := WriteFile(filepath.Join(t.TempDir(), "missing", "dir", "x"), &Document{}); !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}
