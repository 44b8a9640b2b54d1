package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePublish(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		return errors.New("paths.source_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.SourceDir == c.Paths.OutputDir {
		return errors.New("paths.source_dir and paths.output_dir must differ")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validatePublish() error {
	if c.Publish.PublicBaseURL == "" {
		return nil
	}
	parsed, err := url.Parse(c.Publish.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("publish.public_base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("publish.public_base_url must use http or https, got %q", c.Publish.PublicBaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("publish.public_base_url must include a host, got %q", c.Publish.PublicBaseURL)
	}
	return nil
}

func (c *Config) validatePipeline() error {
	switch c.Pipeline.HeroPolicy {
	case HeroPolicyHeroFolder, HeroPolicyDuplicate:
		return nil
	default:
		return fmt.Errorf("pipeline.hero_policy must be %q or %q, got %q", HeroPolicyHeroFolder, HeroPolicyDuplicate, c.Pipeline.HeroPolicy)
	}
}

func (c *Config) validateWatch() error {
	if c.Watch.DebounceMillis < minWatchDebounceMilli {
		return fmt.Errorf("watch.debounce_ms must be at least %d", minWatchDebounceMilli)
	}
	return nil
}
