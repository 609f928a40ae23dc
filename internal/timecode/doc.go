// Package timecode parses the colon-delimited time expressions used to mark a
// talk inside a longer video.
package timecode
