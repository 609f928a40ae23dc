// Package media wraps the ffmpeg invocations talkclip needs.
//
// Trim cuts the talk out of the downloaded video with stream copy, so the
// clip keeps the source codecs and cut points snap to the nearest keyframe.
// ExtractAudio re-encodes the clip's audio to MP3 (320k, 44.1kHz by default)
// for transcription.
//
// Tests replace the process call through WithCommandRunner.
package media
