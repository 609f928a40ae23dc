package youtube

import (
	"errors"
	"testing"

	ytdl "github.com/kkdai/youtube/v2"
)

func TestVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://youtube.com/watch?v=abc123", "abc123"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"http://m.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/live/dQw4w9WgXcQ?feature=share", "dQw4w9WgXcQ"},
		{"  https://YOUTUBE.com/watch?v=a-b_c  ", "a-b_c"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := VideoID(tt.url)
			if err != nil {
				t.Fatalf("VideoID returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("VideoID = %q, want %q", got, tt.want)
			}
			if !ValidateURL(tt.url) {
				t.Fatal("ValidateURL disagreed with VideoID")
			}
		})
	}
}

func TestVideoIDRejects(t *testing.T) {
	for _, raw := range []string{
		"",
		"not a url",
		"ftp://youtube.com/watch?v=abc",
		"https://vimeo.com/12345",
		"https://youtube.com/",
		"https://youtube.com/watch?v=bad%20id",
		"https://evil.com/?v=abc123",
	} {
		t.Run(raw, func(t *testing.T) {
			if _, err := VideoID(raw); !errors.Is(err, ErrInvalidURL) {
				t.Fatalf("VideoID(%q) error = %v, want ErrInvalidURL", raw, err)
			}
			if ValidateURL(raw) {
				t.Fatalf("ValidateURL(%q) = true", raw)
			}
		})
	}
}

func TestBestMuxedFormat(t *testing.T) {
	formats := ytdl.FormatList{
		{ItagNo: 137, Height: 1080, Bitrate: 4000000},
		{ItagNo: 140, AudioChannels: 2, Bitrate: 128000},
		{ItagNo: 18, Height: 360, AudioChannels: 2, Bitrate: 500000},
		{ItagNo: 22, Height: 720, AudioChannels: 2, Bitrate: 1000000},
		{ItagNo: 59, Height: 720, AudioChannels: 2, Bitrate: 900000},
	}
	got, ok := bestMuxedFormat(formats)
	if !ok {
		t.Fatal("expected a format")
	}
	if got.ItagNo != 22 {
		t.Fatalf("expected itag 22, got %d", got.ItagNo)
	}

	if _, ok := bestMuxedFormat(formats[:2]); ok {
		t.Fatal("expected no muxed format among adaptive streams")
	}
}
