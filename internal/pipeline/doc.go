// Package pipeline drives a single talk request through acquisition,
// segmentation, transcription, and summarization.
//
// Before any stage runs, every stage's Prepare validates the request and
// resolves artifact paths, the artifact directories are created, ffmpeg is
// probed, and an exclusive lock is taken on the talks directory. Stages then
// execute strictly in order; the first error stops the run and is returned
// unchanged so callers can classify it with services.Kind.
//
// NewFromConfig wires the production clients; tests build Dependencies with
// fakes and call New directly.
package pipeline
