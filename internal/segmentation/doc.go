// Package segmentation cuts the talk out of the downloaded video and extracts
// an MP3 of its audio. Each output is skipped when it already exists, so a
// rerun after a later stage failed does no ffmpeg work.
package segmentation
