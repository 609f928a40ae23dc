package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	ytdl "github.com/kkdai/youtube/v2"
)

// ErrNoMuxedFormat reports a video without any format carrying audio and video together.
var ErrNoMuxedFormat = errors.New("no combined audio and video format")

// Client streams videos through github.com/kkdai/youtube.
type Client struct {
	yt *ytdl.Client
}

// NewClient returns a Client using httpClient, or http.DefaultClient when nil.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{yt: &ytdl.Client{HTTPClient: httpClient}}
}

// Open resolves the video and returns a stream of its highest quality
// combined audio and video format along with the advertised size in bytes
// (zero when unknown).
func (c *Client) Open(ctx context.Context, videoID string) (io.ReadCloser, int64, error) {
	video, err := c.yt.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, 0, fmt.Errorf("resolve video %s: %w", videoID, err)
	}
	format, ok := bestMuxedFormat(video.Formats)
	if !ok {
		return nil, 0, fmt.Errorf("video %s: %w", videoID, ErrNoMuxedFormat)
	}
	stream, size, err := c.yt.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, 0, fmt.Errorf("open stream for %s (itag %d): %w", videoID, format.ItagNo, err)
	}
	return stream, size, nil
}

// bestMuxedFormat picks the tallest format that carries both audio and video,
// breaking ties on bitrate.
func bestMuxedFormat(formats ytdl.FormatList) (*ytdl.Format, bool) {
	var best *ytdl.Format
	for i := range formats {
		f := &formats[i]
		if f.AudioChannels == 0 || f.Height == 0 {
			continue
		}
		if best == nil || f.Height > best.Height || (f.Height == best.Height && f.Bitrate > best.Bitrate) {
			best = f
		}
	}
	return best, best != nil
}
