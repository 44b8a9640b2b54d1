// Package logging assembles structured slog loggers and formatting helpers used
// across the portfolio tooling.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so pipeline code can tag log lines with
// run IDs and gallery categories. The console handler only emits ANSI colour
// when it writes to a terminal. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every command emits
// lines with the same shape.
package logging
