package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

func (c *Config) normalize() error {
	if err := c.normalizeProjectRoot(); err != nil {
		return err
	}
	if err := c.loadEnvFiles(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePublish()
	c.normalizePipeline()
	c.normalizeWatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeProjectRoot() error {
	root := strings.TrimSpace(c.Paths.ProjectRoot)
	if root == "" {
		if value, ok := os.LookupEnv(envProjectRoot); ok {
			root = strings.TrimSpace(value)
		}
	}
	if root == "" {
		root = "."
	}
	var err error
	if c.Paths.ProjectRoot, err = expandPath(root); err != nil {
		return fmt.Errorf("paths.project_root: %w", err)
	}
	return nil
}

// loadEnvFiles loads .env.local then .env from the project root. Variables
// already present in the process environment are never overridden.
func (c *Config) loadEnvFiles() error {
	for _, name := range envFiles {
		path := filepath.Join(c.Paths.ProjectRoot, name)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) normalizePaths() error {
	root := c.Paths.ProjectRoot
	var err error
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		c.Paths.SourceDir = defaultSourceDir
	}
	if c.Paths.SourceDir, err = expandRelative(root, c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandRelative(root, c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandRelative(root, c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.CatalogFile, err = expandRelative(root, c.Paths.CatalogFile); err != nil {
		return fmt.Errorf("paths.catalog_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.ManifestFile) == "" {
		c.Paths.ManifestFile = defaultManifestFile
	}
	if c.Paths.ManifestFile, err = expandRelative(root, c.Paths.ManifestFile); err != nil {
		return fmt.Errorf("paths.manifest_file: %w", err)
	}
	return nil
}

func (c *Config) normalizePublish() {
	c.Publish.PublicBaseURL = strings.TrimSpace(c.Publish.PublicBaseURL)
	if c.Publish.PublicBaseURL == "" {
		if value, ok := os.LookupEnv(envPublicBaseURL); ok {
			c.Publish.PublicBaseURL = strings.TrimSpace(value)
		}
	}
	c.Publish.PublicBaseURL = strings.TrimRight(c.Publish.PublicBaseURL, "/")
}

func (c *Config) normalizePipeline() {
	c.Pipeline.HeroPolicy = strings.ToLower(strings.TrimSpace(c.Pipeline.HeroPolicy))
	if c.Pipeline.HeroPolicy == "" {
		c.Pipeline.HeroPolicy = defaultHeroPolicy
	}
}

func (c *Config) normalizeWatch() {
	if c.Watch.DebounceMillis <= 0 {
		c.Watch.DebounceMillis = defaultWatchDebounce
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
