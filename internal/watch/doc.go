// Package watch re-runs the pipeline when source images change.
//
// The source root and each category directory are watched with fsnotify.
// Image events are coalesced by a debounce timer and each burst triggers one
// full pipeline run; runs never overlap.
package watch
