// Package config loads, normalizes, and validates portfolio pipeline settings.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads .env.local/.env from the project root,
// and honours environment fallbacks such as PORTFOLIO_PUBLIC_BASE_URL. The
// Config type centralizes every knob the CLI and the image pipeline need so
// source, output and state directories are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
