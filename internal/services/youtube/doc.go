// Package youtube validates YouTube URLs and streams source videos.
//
// URL parsing is local and strict about hosts so that obviously wrong input
// fails before any network call. Downloads go through
// github.com/kkdai/youtube, choosing the best format that already muxes audio
// and video so the clip can be cut without re-encoding.
package youtube
