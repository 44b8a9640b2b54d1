package config

const (
	defaultConfigPath     = "~/.config/portfolio/config.toml"
	projectConfigName     = "portfolio.toml"
	defaultSourceDir      = "public/images/original"
	defaultOutputDir      = "public/images"
	defaultStateDir       = "~/.local/share/portfolio"
	defaultManifestFile   = "image-urls.txt"
	defaultHeroPolicy     = HeroPolicyHeroFolder
	defaultWatchDebounce  = 2000
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	envProjectRoot        = "PORTFOLIO_PROJECT_ROOT"
	envPublicBaseURL      = "PORTFOLIO_PUBLIC_BASE_URL"
	minWatchDebounceMilli = 100
)

// Hero policies accepted by pipeline.hero_policy.
const (
	// HeroPolicyHeroFolder writes the hero rendition once, as hero/hero.jpeg.
	HeroPolicyHeroFolder = "hero-folder"
	// HeroPolicyDuplicate writes hero/hero.jpeg and copies it into the
	// fullscreen and thumbnails folders as hero.jpeg.
	HeroPolicyDuplicate = "duplicate"
)

// envFiles are loaded from the project root, first match wins per key.
var envFiles = []string{".env.local", ".env"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:    defaultSourceDir,
			OutputDir:    defaultOutputDir,
			StateDir:     defaultStateDir,
			ManifestFile: defaultManifestFile,
		},
		Pipeline: Pipeline{
			HeroPolicy: defaultHeroPolicy,
		},
		Watch: Watch{
			DebounceMillis: defaultWatchDebounce,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
