// Package acquisition implements the first pipeline stage: fetching the full
// YouTube video into the download directory.
//
// The downloaded file is keyed by video ID, so the same video is fetched once
// no matter how many talks are cut from it. Bytes stream into a temporary
// sibling and are renamed into place only after the stream ends cleanly.
// Progress is reported in whole megabytes, throttled with rate.Sometimes.
package acquisition
