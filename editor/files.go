package editor

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/milk9111/dungeonmap/mapdata"
	"github.com/milk9111/dungeonmap/project"
	"github.com/milk9111/dungeonmap/render"
	"github.com/milk9111/dungeonmap/vtt"
)

var errNoRenderer = errors.New("export needs assets and a rasterizer")

func (s *Session) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.opts.ProjectDir, name)
}

func (s *Session) fail(err error) string {
	msg := "Err: " + err.Error()
	log.Printf("editor: %v", err)
	s.setStatus(msg, StatusDuration)
	return msg
}

func (s *Session) done(msg string) string {
	s.setStatus(msg, StatusDuration)
	return msg
}

// ListProjects returns the project files in the project directory.
func (s *Session) ListProjects() ([]string, error) {
	return project.List(s.opts.ProjectDir)
}

// Save writes every level to name (".json" appended when missing).
func (s *Session) Save(name string) string {
	path, err := project.Save(s.path(name), s.store)
	if err != nil {
		return s.fail(err)
	}
	log.Printf("Saved project: %s", path)
	return s.done("Saved: " + filepath.Base(path))
}

// Load replaces every level with the content of name, re-gridded to the
// current viewport. Level 0 becomes current and history is cleared. On
// failure the session is left as it was.
func (s *Session) Load(name string) string {
	w, h := s.store.DefaultSize()
	store, err := project.Load(s.path(name), w, h, s.opts.TileSize)
	if err != nil {
		return s.fail(err)
	}
	store.GetOrCreate(0)
	s.store = store
	s.level = 0
	s.history.Clear()
	s.wallStart = nil
	s.dragging = false
	log.Printf("Loaded project: %s (%d levels)", name, store.Len())
	return s.done("Loaded: " + filepath.Base(name))
}

// ExportVTT writes the current level as a .dd2vtt file.
func (s *Session) ExportVTT(name string) string {
	if s.opts.VTTRaster == nil || s.assets == nil {
		return s.fail(errNoRenderer)
	}
	lvl := s.current()
	path, err := vtt.ExportFile(s.path(name), lvl.Grid, lvl.Walls, s.assets, s.opts.VTTRaster)
	if errors.Is(err, vtt.ErrEmptyMap) {
		return s.done("Empty map")
	}
	if err != nil {
		return s.fail(err)
	}
	log.Printf("Exported VTT: %s", path)
	return s.done("Export OK: " + filepath.Base(path))
}

// ExportImage writes the current level as a PNG with a one-tile margin.
func (s *Session) ExportImage(name string) string {
	if s.opts.ImageRaster == nil || s.assets == nil {
		return s.fail(errNoRenderer)
	}
	path, err := render.ExportImage(s.path(name), s.Grid(), s.assets, s.opts.ImageRaster)
	if errors.Is(err, render.ErrEmptyMap) {
		return s.done("Empty map")
	}
	if err != nil {
		return s.fail(err)
	}
	log.Printf("Exported image: %s", path)
	return s.done("Export OK: " + filepath.Base(path))
}

// CopyCell encodes the stack of the cell under the pointer. It reports false
// for empty or out-of-grid cells.
func (s *Session) CopyCell(px, py int) ([]byte, bool) {
	g := s.Grid()
	x, y, ok := g.CellAt(px, py)
	if !ok {
		return nil, false
	}
	c := g.Cell(x, y)
	if len(c) == 0 {
		return nil, false
	}
	data, err := project.MarshalCell(c)
	if err != nil {
		s.fail(err)
		return nil, false
	}
	s.setStatus(fmt.Sprintf("Copied %d tiles", len(c)), ShortStatusDuration)
	return data, true
}

// PasteCell replaces the stack of the cell under the pointer with data from
// CopyCell.
func (s *Session) PasteCell(px, py int, data []byte) bool {
	if s.editsBlocked() {
		return false
	}
	lvl := s.current()
	x, y, ok := lvl.Grid.CellAt(px, py)
	if !ok {
		return false
	}
	c, err := project.UnmarshalCell(data)
	if err != nil {
		s.fail(err)
		return false
	}
	if c.Equal(lvl.Grid.Cell(x, y)) {
		return false
	}
	s.history.Record(lvl.Grid, lvl.Walls)
	lvl.Grid.SetCell(x, y, c)
	s.setStatus(fmt.Sprintf("Pasted %d tiles", len(c)), ShortStatusDuration)
	return true
}

// DrawItems is the layer-major draw list of the current level.
func (s *Session) DrawItems() []mapdata.DrawItem {
	return s.Grid().DrawOrder()
}
