// Package rendition plans the derived images for each category.
//
// Specs bundles the thumbnail, fullscreen and hero renditions; it is built
// once and passed to the Planner and transcoder explicitly. HeroRules is the
// ranked list of predicates that picks a category's hero image, and
// HeroPolicy selects whether the hero rendition lives only under hero/ or is
// duplicated into the other folders as hero.jpeg.
package rendition
