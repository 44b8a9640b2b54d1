// Package pipeline runs the image derivation batch.
//
// A run takes the state-directory lock, ensures the output layout, then walks
// every category sequentially: list the source images, plan the renditions,
// and transcode each job in turn. Job failures are logged and counted but
// never abort the run; only lock, layout and manifest errors are returned.
// Cancelling the context stops scheduling new jobs while the job in flight
// completes.
package pipeline
