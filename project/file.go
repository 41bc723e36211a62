package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/dungeonmap/mapdata"
)

// Ext is the project file suffix.
const Ext = ".json"

// NormalizePath appends Ext when name lacks it.
func NormalizePath(name string) string {
	if !strings.HasSuffix(name, Ext) {
		name += Ext
	}
	return name
}

// Save writes every level of store to path and returns the final path.
func Save(path string, store *mapdata.LevelStore) (string, error) {
	path = NormalizePath(path)
	data, err := Marshal(Encode(store))
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	return path, nil
}

// Load reads a project file and re-grids every level at the given size.
func Load(path string, pixelWidth, pixelHeight, tileSize int) (*mapdata.LevelStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return Decode(doc, pixelWidth, pixelHeight, tileSize)
}

// List returns the project files in dir sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), Ext) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// MarshalCell encodes one cell stack with the tile records used in project
// files.
func MarshalCell(c mapdata.Cell) ([]byte, error) {
	stack := make([]TileRecord, len(c))
	for i, t := range c {
		stack[i] = tileRecord(t)
	}
	return json.Marshal(stack)
}

// UnmarshalCell is the inverse of MarshalCell.
func UnmarshalCell(data []byte) (mapdata.Cell, error) {
	var raw []rawTile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedProject, err)
	}
	c := make(mapdata.Cell, 0, len(raw))
	for _, rt := range raw {
		tr, err := rt.record()
		if err != nil {
			return nil, err
		}
		c = append(c, tr.tile())
	}
	return c, nil
}
