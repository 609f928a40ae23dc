// Package artifacts defines where every pipeline artifact lives on disk.
//
// Source videos are keyed by YouTube video ID under the download root; clip,
// audio, transcript, and summary files are keyed by the sanitized talk title
// under the talks root. Presence of a file at its final path is the pipeline's
// only cache, so all writes are committed by renaming a ".partial" sibling.
package artifacts
