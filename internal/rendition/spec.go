package rendition

import (
	"errors"
	"fmt"
)

// Kind names a rendition.
type Kind string

const (
	KindThumbnail  Kind = "thumbnail"
	KindFullscreen Kind = "fullscreen"
	KindHero       Kind = "hero"
)

// Format is an output encoding.
type Format string

// FormatJPEG is the only encoding the gallery consumes.
const FormatJPEG Format = "jpeg"

// Ext returns the file extension, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Output folder names beneath each category.
const (
	FolderThumbnails = "thumbnails"
	FolderFullscreen = "fullscreen"
	FolderHero       = "hero"
)

// Spec describes one rendition: bounding width, quality and encoding.
type Spec struct {
	Kind    Kind
	Folder  string
	Width   int
	Quality int
	Format  Format
}

func (s Spec) validate() error {
	switch {
	case s.Kind == "":
		return errors.New("rendition kind is required")
	case s.Folder == "":
		return fmt.Errorf("%s: folder is required", s.Kind)
	case s.Width <= 0:
		return fmt.Errorf("%s: width must be positive", s.Kind)
	case s.Quality < 1 || s.Quality > 100:
		return fmt.Errorf("%s: quality must be between 1 and 100", s.Kind)
	case s.Format != FormatJPEG:
		return fmt.Errorf("%s: unsupported format %q", s.Kind, s.Format)
	}
	return nil
}

// Specs holds the three renditions shared by every category. The zero value
// is not usable; construct with DefaultSpecs or NewSpecs.
type Specs struct {
	thumbnail  Spec
	fullscreen Spec
	hero       Spec
}

// DefaultSpecs returns the renditions the gallery is built around.
func DefaultSpecs() Specs {
	return Specs{
		thumbnail:  Spec{Kind: KindThumbnail, Folder: FolderThumbnails, Width: 400, Quality: 80, Format: FormatJPEG},
		fullscreen: Spec{Kind: KindFullscreen, Folder: FolderFullscreen, Width: 1600, Quality: 85, Format: FormatJPEG},
		hero:       Spec{Kind: KindHero, Folder: FolderHero, Width: 1920, Quality: 85, Format: FormatJPEG},
	}
}

// NewSpecs validates and bundles a custom set of renditions.
func NewSpecs(thumbnail, fullscreen, hero Spec) (Specs, error) {
	for _, s := range []Spec{thumbnail, fullscreen, hero} {
		if err := s.validate(); err != nil {
			return Specs{}, err
		}
	}
	if thumbnail.Kind != KindThumbnail || fullscreen.Kind != KindFullscreen || hero.Kind != KindHero {
		return Specs{}, errors.New("renditions must be thumbnail, fullscreen and hero in that order")
	}
	return Specs{thumbnail: thumbnail, fullscreen: fullscreen, hero: hero}, nil
}

func (s Specs) Thumbnail() Spec  { return s.thumbnail }
func (s Specs) Fullscreen() Spec { return s.fullscreen }
func (s Specs) Hero() Spec       { return s.hero }

// All returns the specs in folder-creation order.
func (s Specs) All() []Spec {
	return []Spec{s.thumbnail, s.fullscreen, s.hero}
}

// Folders returns the output folder names.
func (s Specs) Folders() []string {
	return []string{s.thumbnail.Folder, s.fullscreen.Folder, s.hero.Folder}
}
