package materialize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"portfolio/internal/catalog"
	"portfolio/internal/fileutil"
	"portfolio/internal/rendition"
)

// Layout describes the directories EnsureLayout touched.
type Layout struct {
	Directories []string
	Created     []string
}

// EnsureLayout creates the source root and
// <outputRoot>/<slug>/<folder> for every category and rendition folder.
// Existing directories are left untouched.
func EnsureLayout(sourceRoot, outputRoot string, categories []catalog.Category, specs rendition.Specs) (Layout, error) {
	dirs := make([]string, 0, 1+len(categories)*3)
	dirs = append(dirs, sourceRoot)
	for _, category := range categories {
		for _, folder := range specs.Folders() {
			dirs = append(dirs, filepath.Join(outputRoot, category.Slug(), folder))
		}
	}

	layout := Layout{Directories: dirs}
	for _, dir := range dirs {
		created, err := ensureDir(dir)
		if err != nil {
			return layout, err
		}
		if created {
			layout.Created = append(layout.Created, dir)
		}
	}
	return layout, nil
}

func ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("create directory %q: path exists and is not a directory", dir)
	case !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("stat directory %q: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create directory %q: %w", dir, err)
	}
	return true, nil
}

// DuplicateHero copies a finished hero rendition to each target.
func DuplicateHero(copies []rendition.Copy) error {
	var errs []error
	for _, c := range copies {
		if err := fileutil.CopyFile(c.From, c.To); err != nil {
			errs = append(errs, fmt.Errorf("copy hero to %s: %w", c.To, err))
		}
	}
	return errors.Join(errs...)
}
