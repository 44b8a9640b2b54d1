// Package main hosts the optimize-images CLI.
//
// The Cobra command tree loads configuration once per invocation, resolves
// the category catalog and hands both to the internal pipeline, watch,
// preflight and history packages. Reports go to stdout; logs go to stderr
// and the state-directory log file.
package main
