package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"portfolio/internal/config"
)

type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// Load reads a YAML catalog file of the form:
//
//	categories:
//	  - name: wildlife
//	    title: Wildlife
//	    description: Animals in their natural habitat
//	    group: subjects
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML. Unknown keys are rejected so typos surface
// instead of silently dropping metadata.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, errors.New("catalog declares no categories")
	}
	return New(file.Categories...)
}

// Discover lists the subdirectories of sourceRoot as categories, sorted by
// name. A missing source root yields an empty list.
func Discover(sourceRoot string) ([]Category, error) {
	entries, err := os.ReadDir(sourceRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan source root: %w", err)
	}
	categories := make([]Category, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		categories = append(categories, Category{Name: entry.Name()})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// Resolve builds the catalog for a run: the configured catalog file or the
// built-in list, extended with undeclared source folders when discovery is
// enabled.
func Resolve(cfg *config.Config) (*Catalog, error) {
	if cfg == nil {
		return Default(), nil
	}
	c := Default()
	if cfg.Paths.CatalogFile != "" {
		loaded, err := Load(cfg.Paths.CatalogFile)
		if err != nil {
			return nil, err
		}
		c = loaded
	}
	if !cfg.Pipeline.DiscoverCategories {
		return c, nil
	}
	found, err := Discover(cfg.Paths.SourceDir)
	if err != nil {
		return nil, err
	}
	return c.With(found...)
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
