package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/dungeonmap/catalog"
)

// tileImages converts catalog bitmaps to GPU images on first use.
type tileImages struct {
	cat    *catalog.Catalog
	full   map[string]*ebiten.Image
	thumbs map[string]*ebiten.Image
}

func newTileImages(cat *catalog.Catalog) *tileImages {
	return &tileImages{
		cat:    cat,
		full:   make(map[string]*ebiten.Image),
		thumbs: make(map[string]*ebiten.Image),
	}
}

// Full returns the footprint-sized image of key, or nil when unknown.
func (t *tileImages) Full(key string) *ebiten.Image {
	if img, ok := t.full[key]; ok {
		return img
	}
	src, ok := t.cat.Image(key)
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	t.full[key] = img
	return img
}

// Thumb returns the one-tile palette image of key, or nil when unknown.
func (t *tileImages) Thumb(key string) *ebiten.Image {
	if img, ok := t.thumbs[key]; ok {
		return img
	}
	src, ok := t.cat.Thumbnail(key)
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	t.thumbs[key] = img
	return img
}

// Replace swaps the catalog and frees every converted image.
func (t *tileImages) Replace(cat *catalog.Catalog) {
	for _, img := range t.full {
		img.Deallocate()
	}
	for _, img := range t.thumbs {
		img.Deallocate()
	}
	t.cat = cat
	t.full = make(map[string]*ebiten.Image)
	t.thumbs = make(map[string]*ebiten.Image)
}
