package rendition

import (
	"fmt"
	"path/filepath"

	"portfolio/internal/catalog"
)

// Job pairs one source image with one rendition and its destination.
type Job struct {
	Category    string
	Slug        string
	Source      catalog.SourceImage
	Spec        Spec
	Destination string
}

// String identifies the job in logs.
func (j Job) String() string {
	return fmt.Sprintf("%s/%s (%s)", j.Category, j.Source.Name, j.Spec.Kind)
}

// Copy duplicates a finished rendition to another path.
type Copy struct {
	From string
	To   string
}

// Collision is a source skipped because an earlier file in the listing
// already claims the same rendition file names.
type Collision struct {
	Image catalog.SourceImage
	With  catalog.SourceImage
}

// String describes the collision for logs and tables.
func (c Collision) String() string {
	return fmt.Sprintf("%s (same output as %s)", c.Image.Name, c.With.Name)
}

// Plan is the ordered work for one category. Images lists every discovered
// source; sources in Collisions get no jobs and are never the hero.
type Plan struct {
	Category    catalog.Category
	Images      []catalog.SourceImage
	Jobs        []Job
	Hero        *HeroChoice
	HeroCopies  []Copy
	UnsafeNames []string
	Collisions  []Collision
}

// Planner turns category listings into rendition jobs.
type Planner struct {
	outputRoot string
	specs      Specs
	rules      HeroRules
	policy     HeroPolicy
}

// Option configures a Planner.
type Option func(*Planner)

// WithHeroRules replaces the hero selection rules.
func WithHeroRules(rules HeroRules) Option {
	return func(p *Planner) {
		p.rules = rules
	}
}

// WithHeroPolicy sets where hero renditions go.
func WithHeroPolicy(policy HeroPolicy) Option {
	return func(p *Planner) {
		p.policy = policy
	}
}

// NewPlanner builds a planner writing beneath outputRoot.
func NewPlanner(outputRoot string, specs Specs, opts ...Option) *Planner {
	p := &Planner{
		outputRoot: outputRoot,
		specs:      specs,
		rules:      DefaultHeroRules(),
		policy:     HeroFolder,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Specs returns the renditions the planner schedules.
func (p *Planner) Specs() Specs {
	return p.specs
}

// Policy returns the active hero policy.
func (p *Planner) Policy() HeroPolicy {
	return p.policy
}

// CategoryDir returns <outputRoot>/<slug>.
func (p *Planner) CategoryDir(category catalog.Category) string {
	return filepath.Join(p.outputRoot, category.Slug())
}

// Destination resolves <outputRoot>/<slug>/<folder>/<baseName>.<ext>.
func (p *Planner) Destination(category catalog.Category, spec Spec, baseName string) string {
	return filepath.Join(p.CategoryDir(category), spec.Folder, baseName+spec.Format.Ext())
}

// Plan schedules a thumbnail and a fullscreen job for every image, in listing
// order, followed by one hero job writing hero/hero.jpeg when a hero is
// selected. A later file whose base name was already planned is recorded as
// a collision instead of overwriting the earlier file's renditions.
func (p *Planner) Plan(category catalog.Category, images []catalog.SourceImage) Plan {
	plan := Plan{
		Category: category,
		Images:   images,
		Jobs:     make([]Job, 0, len(images)*2+1),
	}
	claimed := make(map[string]catalog.SourceImage, len(images))
	planned := make([]catalog.SourceImage, 0, len(images))
	for _, img := range images {
		if first, ok := claimed[img.BaseName]; ok {
			plan.Collisions = append(plan.Collisions, Collision{Image: img, With: first})
			continue
		}
		claimed[img.BaseName] = img
		planned = append(planned, img)
		plan.Jobs = append(plan.Jobs,
			p.job(category, img, p.specs.thumbnail, img.BaseName),
			p.job(category, img, p.specs.fullscreen, img.BaseName),
		)
		if !IsURLSafe(img.BaseName) {
			plan.UnsafeNames = append(plan.UnsafeNames, img.Name)
		}
	}

	choice, ok := p.rules.Select(planned)
	if !ok {
		return plan
	}
	plan.Hero = &choice

	heroJob := p.job(category, choice.Image, p.specs.hero, ReservedHeroName)
	plan.Jobs = append(plan.Jobs, heroJob)

	if p.policy == Duplicate {
		for _, spec := range []Spec{p.specs.fullscreen, p.specs.thumbnail} {
			plan.HeroCopies = append(plan.HeroCopies, Copy{
				From: heroJob.Destination,
				To:   p.Destination(category, spec, ReservedHeroName),
			})
		}
	}
	return plan
}

func (p *Planner) job(category catalog.Category, img catalog.SourceImage, spec Spec, baseName string) Job {
	return Job{
		Category:    category.Name,
		Slug:        category.Slug(),
		Source:      img,
		Spec:        spec,
		Destination: p.Destination(category, spec, baseName),
	}
}

// Counts tallies planned jobs by rendition kind.
func (pl Plan) Counts() map[Kind]int {
	counts := make(map[Kind]int, 3)
	for _, job := range pl.Jobs {
		counts[job.Spec.Kind]++
	}
	return counts
}

// IsURLSafe reports whether name can appear in a URL path segment without
// escaping.
func IsURLSafe(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == '~':
		default:
			return false
		}
	}
	return true
}
