// Package preflight provides readiness checks for the filesystem paths and
// remote endpoints the image pipeline depends on.
//
// The doctor command runs RunAll and renders the results. Checks for
// optional features (manifest URL, run journal) are skipped when the feature
// is disabled.
package preflight
