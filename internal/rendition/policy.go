package rendition

import (
	"fmt"
	"strings"

	"portfolio/internal/config"
)

// HeroPolicy decides where the hero rendition is written.
type HeroPolicy string

const (
	// HeroFolder writes hero/hero.jpeg only.
	HeroFolder HeroPolicy = config.HeroPolicyHeroFolder
	// Duplicate writes hero/hero.jpeg and copies it to fullscreen/hero.jpeg
	// and thumbnails/hero.jpeg.
	Duplicate HeroPolicy = config.HeroPolicyDuplicate
)

// ParseHeroPolicy accepts the configuration spelling of a policy. An empty
// value selects HeroFolder.
func ParseHeroPolicy(value string) (HeroPolicy, error) {
	switch HeroPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", HeroFolder:
		return HeroFolder, nil
	case Duplicate:
		return Duplicate, nil
	default:
		return "", fmt.Errorf("unknown hero policy %q", value)
	}
}
