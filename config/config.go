package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up next to the working directory when no path is given.
const DefaultFile = "editor.yaml"

// Config holds the editor settings. Every field may be omitted from the yaml
// file; missing or non-positive values keep their defaults.
type Config struct {
	WindowWidth    int `yaml:"window_width"`
	WindowHeight   int `yaml:"window_height"`
	SidePanelWidth int `yaml:"side_panel_width"`
	MenuHeight     int `yaml:"menu_height"`

	TileSize   int    `yaml:"tile_size"`
	AssetRoot  string `yaml:"asset_root"`
	ProjectDir string `yaml:"project_dir"`

	HistoryLimit      int     `yaml:"history_limit"`
	WallPickThreshold float64 `yaml:"wall_pick_threshold"`
}

func Default() *Config {
	return &Config{
		WindowWidth:    1280,
		WindowHeight:   800,
		SidePanelWidth: 320,
		MenuHeight:     50,

		TileSize:   64,
		AssetRoot:  "Neutral Stone",
		ProjectDir: ".",

		HistoryLimit:      30,
		WallPickThreshold: 10,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	cfg.fill()
	return cfg, nil
}

func (c *Config) fill() {
	def := Default()
	if c.WindowWidth <= 0 {
		c.WindowWidth = def.WindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = def.WindowHeight
	}
	if c.SidePanelWidth < 0 {
		c.SidePanelWidth = def.SidePanelWidth
	}
	if c.MenuHeight < 0 {
		c.MenuHeight = def.MenuHeight
	}
	if c.TileSize <= 0 {
		c.TileSize = def.TileSize
	}
	if c.AssetRoot == "" {
		c.AssetRoot = def.AssetRoot
	}
	if c.ProjectDir == "" {
		c.ProjectDir = def.ProjectDir
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = def.HistoryLimit
	}
	if c.WallPickThreshold <= 0 {
		c.WallPickThreshold = def.WallPickThreshold
	}
}

// MapViewport returns the pixel size left for the map in a window of w x h
// once the side panel and the menu bar are taken out.
func (c *Config) MapViewport(w, h int) (int, int) {
	return max(w-c.SidePanelWidth, 0), max(h-c.MenuHeight, 0)
}
