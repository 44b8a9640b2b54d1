package rendition

import (
	"strings"

	"portfolio/internal/catalog"
)

// ReservedHeroName is the base name that marks a category's hero image.
const ReservedHeroName = "hero"

// Hero rule names, reported with every selection.
const (
	RuleExactName = "exact-name"
	RuleNameHint  = "name-contains"
	RuleFirstFile = "first-file"
)

// HeroRule is one ranked predicate of the hero selection.
type HeroRule struct {
	Name  string
	Match func(catalog.SourceImage) bool
}

// HeroRules are tried in order; the first rule matching any image wins and
// the first matching image in listing order is chosen.
type HeroRules []HeroRule

// HeroChoice is the outcome of hero selection.
type HeroChoice struct {
	Image catalog.SourceImage
	Rule  string
}

// ExactNameRule matches a base name equal to ReservedHeroName, ignoring case.
func ExactNameRule() HeroRule {
	return HeroRule{Name: RuleExactName, Match: func(img catalog.SourceImage) bool {
		return strings.EqualFold(img.BaseName, ReservedHeroName)
	}}
}

// NameHintRule matches any file name containing the hero marker.
func NameHintRule() HeroRule {
	return HeroRule{Name: RuleNameHint, Match: func(img catalog.SourceImage) bool {
		return strings.Contains(strings.ToLower(img.Name), ReservedHeroName)
	}}
}

// FirstFileRule matches every image, selecting the first listed.
func FirstFileRule() HeroRule {
	return HeroRule{Name: RuleFirstFile, Match: func(catalog.SourceImage) bool { return true }}
}

// DefaultHeroRules returns exact name, then name hint, then first file.
func DefaultHeroRules() HeroRules {
	return HeroRules{ExactNameRule(), NameHintRule(), FirstFileRule()}
}

// Select applies the rules to images. It reports false when no rule matches,
// which is always the case for an empty list.
func (r HeroRules) Select(images []catalog.SourceImage) (HeroChoice, bool) {
	for _, rule := range r {
		if rule.Match == nil {
			continue
		}
		for _, img := range images {
			if rule.Match(img) {
				return HeroChoice{Image: img, Rule: rule.Name}, true
			}
		}
	}
	return HeroChoice{}, false
}
