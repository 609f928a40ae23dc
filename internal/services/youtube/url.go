package youtube

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidURL reports a URL that does not point at a YouTube video.
var ErrInvalidURL = errors.New("not a YouTube video URL")

var (
	validHosts = map[string]bool{
		"youtube.com":              true,
		"www.youtube.com":          true,
		"m.youtube.com":            true,
		"music.youtube.com":        true,
		"gaming.youtube.com":       true,
		"youtube-nocookie.com":     true,
		"www.youtube-nocookie.com": true,
		"youtu.be":                 true,
	}
	pathPrefixes = []string{"/embed/", "/v/", "/shorts/", "/live/", "/e/"}
	idPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// ValidateURL reports whether raw is a YouTube URL carrying a video ID.
func ValidateURL(raw string) bool {
	_, err := VideoID(raw)
	return err == nil
}

// VideoID extracts the video identifier from a watch, short link, embed,
// shorts, or live URL.
func VideoID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if !validHosts[host] {
		return "", fmt.Errorf("%w: unexpected host %q", ErrInvalidURL, host)
	}

	var id string
	switch {
	case host == "youtu.be":
		id = strings.Split(strings.TrimPrefix(u.Path, "/"), "/")[0]
	case u.Query().Get("v") != "":
		id = u.Query().Get("v")
	default:
		for _, prefix := range pathPrefixes {
			if strings.HasPrefix(u.Path, prefix) {
				id = strings.Split(strings.TrimPrefix(u.Path, prefix), "/")[0]
				break
			}
		}
	}

	if id == "" {
		return "", fmt.Errorf("%w: no video id in %q", ErrInvalidURL, trimmed)
	}
	if !idPattern.MatchString(id) {
		return "", fmt.Errorf("%w: malformed video id %q", ErrInvalidURL, id)
	}
	return id, nil
}
