package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains project and directory configuration. Relative entries are
// resolved against ProjectRoot during normalization.
type Paths struct {
	ProjectRoot  string `toml:"project_root"`
	SourceDir    string `toml:"source_dir"`
	OutputDir    string `toml:"output_dir"`
	StateDir     string `toml:"state_dir"`
	CatalogFile  string `toml:"catalog_file"`
	ManifestFile string `toml:"manifest_file"`
}

// Publish describes where the rendered tree is served from.
type Publish struct {
	// PublicBaseURL is the object-storage or CDN prefix that mirrors the
	// output directory. Empty means the site serves /images locally.
	PublicBaseURL string `toml:"public_base_url"`
}

// Pipeline contains knobs for the derivation run.
type Pipeline struct {
	HeroPolicy         string `toml:"hero_policy"`
	WriteManifest      bool   `toml:"write_manifest"`
	DiscoverCategories bool   `toml:"discover_categories"`
}

// Watch contains configuration for the source watcher.
type Watch struct {
	DebounceMillis int `toml:"debounce_ms"`
}

// History contains configuration for the run journal.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the portfolio tooling.
//
// Configuration sections by subsystem:
//   - Paths: project root, source/output trees, state dir, catalog and manifest files
//   - Publish: public base URL mirrored by the output tree
//   - Pipeline: hero policy, manifest toggle, category discovery
//   - Watch: debounce for watch mode
//   - History: SQLite run journal
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Publish  Publish  `toml:"publish"`
	Pipeline Pipeline `toml:"pipeline"`
	Watch    Watch    `toml:"watch"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory used for the lock, log and
// history files. The image trees are owned by the materializer.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	return nil
}

// LockPath returns the single-instance lock file for pipeline runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "optimize-images.lock")
}

// LogPath returns the persistent log file written alongside console output.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.StateDir, "optimize-images.log")
}

// HistoryPath returns the SQLite run journal location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// expandRelative expands pathValue, resolving relative entries against base
// instead of the working directory.
func expandRelative(base, pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", nil
	}
	if !strings.HasPrefix(pathValue, "~") && !filepath.IsAbs(pathValue) {
		pathValue = filepath.Join(base, pathValue)
	}
	return expandPath(pathValue)
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}
