package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/dungeonmap/catalog"
	"github.com/milk9111/dungeonmap/config"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "Optional YAML settings file")
	assetsDir := flag.String("assets", "", "Directory containing tile images (overrides config)")
	projectDir := flag.String("dir", "", "Directory for projects and exports (overrides config)")
	tileSize := flag.Int("tile", 0, "Tile size in pixels (overrides config)")
	width := flag.Int("width", 0, "Initial window width (overrides config)")
	height := flag.Int("height", 0, "Initial window height (overrides config)")
	noWatch := flag.Bool("no-watch", false, "Disable asset hot reload")
	flag.Parse()

	log.Println("Editor starting...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *assetsDir != "" {
		cfg.AssetRoot = *assetsDir
	}
	if *projectDir != "" {
		cfg.ProjectDir = *projectDir
	}
	if *tileSize > 0 {
		cfg.TileSize = *tileSize
	}
	if *width > 0 {
		cfg.WindowWidth = *width
	}
	if *height > 0 {
		cfg.WindowHeight = *height
	}

	cat, err := catalog.Load(cfg.AssetRoot, cfg.TileSize)
	if err != nil {
		log.Printf("Failed to load assets: %v", err)
		cat = catalog.New(cfg.TileSize)
	}

	var watcher *catalog.Watcher
	if !*noWatch && err == nil {
		watcher, err = catalog.NewWatcher(cfg.AssetRoot)
		if err != nil {
			log.Printf("Asset hot reload disabled: %v", err)
			watcher = nil
		}
	}

	game, err := NewEditorGame(*cfg, cat, watcher)
	if err != nil {
		log.Fatalf("Failed to start editor: %v", err)
	}
	defer game.Close()

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Dungeon Map Editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Printf("Editor exited: %v", err)
	}
}
