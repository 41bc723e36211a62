package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/milk9111/dungeonmap/catalog"
	"github.com/milk9111/dungeonmap/config"
	"github.com/milk9111/dungeonmap/mapdata"
	"github.com/milk9111/dungeonmap/project"
	"github.com/milk9111/dungeonmap/render"
	"github.com/milk9111/dungeonmap/vtt"
)

// mapexport renders a saved project without opening the editor window.
func main() {
	configPath := flag.String("config", config.DefaultFile, "Optional YAML settings file")
	projectPath := flag.String("project", "", "Project file to export (required)")
	assetsDir := flag.String("assets", "", "Directory containing tile images (overrides config)")
	level := flag.Int("level", 0, "Level index to export")
	format := flag.String("format", "vtt", "Output format: vtt or png")
	out := flag.String("out", "", "Output file (defaults to the project name)")
	flag.Parse()

	if *projectPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *assetsDir != "" {
		cfg.AssetRoot = *assetsDir
	}

	cat, err := catalog.Load(cfg.AssetRoot, cfg.TileSize)
	if err != nil {
		log.Fatalf("Failed to load assets: %v", err)
	}

	w, h := cfg.MapViewport(cfg.WindowWidth, cfg.WindowHeight)
	store, err := project.Load(*projectPath, w, h, cfg.TileSize)
	if err != nil {
		log.Fatalf("Failed to load project: %v", err)
	}
	lvl, ok := store.Get(*level)
	if !ok {
		log.Fatalf("Project has no level %d (levels: %v)", *level, store.Indices())
	}

	name := *out
	if name == "" {
		name = strings.TrimSuffix(*projectPath, project.Ext)
	}

	path, err := export(*format, name, lvl, cat)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Printf("Exported level %d to %s", *level, path)
}

func export(format, name string, lvl *mapdata.LevelData, cat *catalog.Catalog) (string, error) {
	switch format {
	case "vtt":
		comp, err := render.NewCompositor(vtt.Background)
		if err != nil {
			return "", err
		}
		defer comp.Close()
		return vtt.ExportFile(name, lvl.Grid, lvl.Walls, cat, comp)
	case "png":
		comp, err := render.NewCompositor(render.ImageBackground)
		if err != nil {
			return "", err
		}
		defer comp.Close()
		return render.ExportImage(name, lvl.Grid, cat, comp)
	}
	return "", fmt.Errorf("unknown format %q", format)
}
