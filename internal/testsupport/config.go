package testsupport

import (
	"path/filepath"
	"testing"

	"portfolio/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The project root is the temp dir, so source and output trees follow the
// repository layout beneath it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ProjectRoot = base
	cfgVal.Paths.SourceDir = filepath.Join(base, "public", "images", "original")
	cfgVal.Paths.OutputDir = filepath.Join(base, "public", "images")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.ManifestFile = filepath.Join(base, "image-urls.txt")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithPublicBaseURL sets the remote base URL used for manifest entries.
func WithPublicBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Publish.PublicBaseURL = url
	}
}

// WithHeroPolicy sets the pipeline hero policy.
func WithHeroPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.HeroPolicy = policy
	}
}

// WithManifest enables the manifest write at the end of a run.
func WithManifest() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.WriteManifest = true
	}
}

// WithHistory enables the SQLite run journal.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// WithDiscoverCategories treats undeclared source folders as categories.
func WithDiscoverCategories() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.DiscoverCategories = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.ProjectRoot
}
