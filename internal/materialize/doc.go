// Package materialize owns the output tree: the directory layout created
// before a run, the hero copies written under the duplicate policy, and the
// optional URL manifest written after it.
package materialize
