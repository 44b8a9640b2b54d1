// Package catalog owns the gallery category table and the source tree walker.
//
// A Catalog is loaded once per invocation, either from the built-in list of
// gallery sections, a declarative YAML file, or a scan of the source root,
// and is keyed by category name. The Walker lists the raster images present in
// each category's source directory; a missing directory is reported through
// ErrCategoryMissing so callers can skip the category without failing.
package catalog
