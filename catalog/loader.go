package catalog

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the optional per-root metadata file.
const ManifestFile = "catalog.yaml"

// Manifest overrides what file names alone say about assets.
type Manifest struct {
	// Categories renames folder-derived categories.
	Categories map[string]string `yaml:"categories"`
	// Assets holds per-key overrides.
	Assets map[string]AssetOverride `yaml:"assets"`
}

type AssetOverride struct {
	Footprint int    `yaml:"footprint"`
	Category  string `yaml:"category"`
}

// LoadManifest reads root/catalog.yaml. A missing file yields an empty
// manifest.
func LoadManifest(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("catalog: unmarshal manifest: %w", err)
	}
	return &m, nil
}

// IsImageFile reports whether path has an extension the loader decodes.
func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// Load walks root and registers every image it can decode. Sub-folders
// become categories; files directly in root land in BaseCategory. Files that
// fail to decode are logged and skipped.
func Load(root string, tileSize int) (*Catalog, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("catalog: asset root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog: asset root %s is not a directory", root)
	}
	manifest, err := LoadManifest(root)
	if err != nil {
		return nil, err
	}

	c := New(tileSize)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsImageFile(d.Name()) {
			return nil
		}
		img, err := decodeFile(path)
		if err != nil {
			log.Printf("catalog: skipping %s: %v", path, err)
			return nil
		}

		category := BaseCategory
		if rel, err := filepath.Rel(root, filepath.Dir(path)); err == nil && rel != "." {
			category = filepath.ToSlash(rel)
		}
		if renamed, ok := manifest.Categories[category]; ok && renamed != "" {
			category = renamed
		}

		key := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		footprint := ParseFootprint(d.Name())
		if o, ok := manifest.Assets[key]; ok {
			if o.Footprint > 0 {
				footprint = o.Footprint
			}
			if o.Category != "" {
				category = o.Category
			}
		}
		a := c.Add(key, category, footprint, img)
		a.Path = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: walk %s: %w", root, err)
	}
	log.Printf("catalog: loaded %d assets in %d categories from %s", c.Len(), len(c.categories), root)
	return c, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
