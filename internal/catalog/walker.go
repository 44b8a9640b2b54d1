package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrCategoryMissing reports that a category has no source directory.
var ErrCategoryMissing = errors.New("category source directory missing")

var supportedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// SourceImage is one raster file discovered in a category directory.
type SourceImage struct {
	Name     string
	BaseName string
	Ext      string
	Path     string
}

// NewSourceImage describes the file name inside dir.
func NewSourceImage(dir, name string) SourceImage {
	ext := filepath.Ext(name)
	return SourceImage{
		Name:     name,
		BaseName: strings.TrimSuffix(name, ext),
		Ext:      ext,
		Path:     filepath.Join(dir, name),
	}
}

// IsSupported reports whether name carries a supported raster extension.
func IsSupported(name string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Walker lists source images beneath a source root.
type Walker struct {
	root string
}

// NewWalker returns a walker rooted at sourceRoot.
func NewWalker(sourceRoot string) *Walker {
	return &Walker{root: sourceRoot}
}

// Root returns the source root.
func (w *Walker) Root() string {
	return w.root
}

// Dir returns the source directory for a category.
func (w *Walker) Dir(category Category) string {
	return filepath.Join(w.root, category.Name)
}

// Images lists the supported files in the category directory in listing
// order. Subdirectories are not descended into.
func (w *Walker) Images(category Category) ([]SourceImage, error) {
	dir := w.Dir(category)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCategoryMissing, dir)
		}
		return nil, fmt.Errorf("stat category %q: %w", category.Name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("category %q: %s is not a directory", category.Name, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list category %q: %w", category.Name, err)
	}
	images := make([]SourceImage, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsSupported(entry.Name()) {
			continue
		}
		images = append(images, NewSourceImage(dir, entry.Name()))
	}
	return images, nil
}
