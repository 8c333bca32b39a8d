package content

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// fileData is the shape of one content YAML document. All sections are
// optional so datasets can be split across files by concern.
type fileData struct {
	Species []Species `yaml:"species"`
	Moves   []Move    `yaml:"moves"`
	Items   []Item    `yaml:"items"`
}

// Load builds the dataset from the compiled-in defaults, then overlays every
// *.yaml/*.yml file found in dir. Overlay entries with the same normalized id
// replace the default. An empty dir loads the defaults only.
func Load(dir string) (*DB, error) {
	db := &DB{
		species: make(map[string]Species),
		moves:   make(map[string]Move),
		items:   make(map[string]Item),
	}
	if err := db.merge(defaultsYAML); err != nil {
		return nil, fmt.Errorf("embedded content: %w", err)
	}
	if dir == "" {
		return db, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("content file %s: %w", e.Name(), err)
		}
		if err := db.merge(raw); err != nil {
			return nil, fmt.Errorf("content file %s: %w", e.Name(), err)
		}
	}
	return db, nil
}

func (db *DB) merge(raw []byte) error {
	var fd fileData
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return err
	}
	for _, s := range fd.Species {
		if s.Name == "" {
			return fmt.Errorf("species entry without a name")
		}
		db.species[Normalize(s.Name)] = s
	}
	for _, m := range fd.Moves {
		if m.ID == "" {
			m.ID = Normalize(m.Name)
		}
		if m.ID == "" {
			return fmt.Errorf("move entry without id or name")
		}
		db.moves[Normalize(m.ID)] = m
	}
	for _, it := range fd.Items {
		if it.ID == "" {
			it.ID = Normalize(it.Name)
		}
		if it.ID == "" {
			return fmt.Errorf("item entry without id or name")
		}
		db.items[Normalize(it.ID)] = it
	}
	return nil
}
