// Package history journals pipeline runs in a SQLite database under the state
// directory.
//
// The journal is write-only from the pipeline's point of view: runs never
// read it, so every invocation still processes the full source tree. It backs
// the history command.
package history
