package catalog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a named photo collection. Name selects the source directory
// verbatim; Slug selects the output directory.
type Category struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Group       string `yaml:"group,omitempty"`
}

// Slug returns the case-folded output folder name for the category.
func (c Category) Slug() string {
	return Slug(c.Name)
}

// Slug case-folds a category name the way output directories are named.
func Slug(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

func defaultTitle(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// Catalog is the in-memory category table, ordered as declared.
type Catalog struct {
	order  []Category
	bySlug map[string]int
}

// New validates categories and builds a catalog. Names must be unique after
// case folding because two such categories would share an output folder.
func New(categories ...Category) (*Catalog, error) {
	c := &Catalog{bySlug: make(map[string]int, len(categories))}
	for _, category := range categories {
		if err := c.add(category); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(category Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if err := validateName(category.Name); err != nil {
		return err
	}
	slug := category.Slug()
	if idx, exists := c.bySlug[slug]; exists {
		return fmt.Errorf("category %q collides with %q (both map to output folder %q)", category.Name, c.order[idx].Name, slug)
	}
	category.Title = strings.TrimSpace(category.Title)
	if category.Title == "" {
		category.Title = defaultTitle(category.Name)
	}
	category.Description = strings.TrimSpace(category.Description)
	category.Group = strings.TrimSpace(category.Group)
	c.bySlug[slug] = len(c.order)
	c.order = append(c.order, category)
	return nil
}

func validateName(name string) error {
	switch {
	case name == "":
		return errors.New("category name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("category name %q is not a directory name", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("category name %q must not contain path separators", name)
	}
	return nil
}

// Categories returns the categories in declaration order.
func (c *Catalog) Categories() []Category {
	if c == nil {
		return nil
	}
	return append([]Category(nil), c.order...)
}

// Len reports the number of categories.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Lookup finds a category by name, ignoring case.
func (c *Catalog) Lookup(name string) (Category, bool) {
	if c == nil {
		return Category{}, false
	}
	idx, ok := c.bySlug[Slug(name)]
	if !ok {
		return Category{}, false
	}
	return c.order[idx], true
}

// Select returns the named categories in the order given. Unknown names are
// reported together.
func (c *Catalog) Select(names ...string) ([]Category, error) {
	selected := make([]Category, 0, len(names))
	var unknown []string
	for _, name := range names {
		category, ok := c.Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		selected = append(selected, category)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown categories: %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}

// With returns a copy of the catalog extended with categories whose slug is
// not yet present. Existing entries win.
func (c *Catalog) With(extra ...Category) (*Catalog, error) {
	next, err := New(c.Categories()...)
	if err != nil {
		return nil, err
	}
	for _, category := range extra {
		if _, exists := next.bySlug[Slug(category.Name)]; exists {
			continue
		}
		if err := next.add(category); err != nil {
			return nil, err
		}
	}
	return next, nil
}
