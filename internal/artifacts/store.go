package artifacts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"talkclip/internal/fileutil"
)

const (
	videoExt      = ".mp4"
	audioExt      = ".mp3"
	transcriptExt = ".txt"
	summaryExt    = ".md"
)

// Store maps logical artifacts to paths under the download and talk roots.
// A file at its final path is trusted as complete; producers must go through
// Produce, WriteFile, or Stream so interrupted work never reaches that name.
type Store struct {
	youtubeDir string
	talksDir   string
	onCommit   func(path string)
}

// Option customizes a Store.
type Option func(*Store)

// WithCommitHook registers fn to run after each artifact is committed.
func WithCommitHook(fn func(path string)) Option {
	return func(s *Store) {
		s.onCommit = fn
	}
}

// New returns a Store rooted at the two artifact directories.
func New(youtubeDir, talksDir string, opts ...Option) *Store {
	s := &Store{youtubeDir: youtubeDir, talksDir: talksDir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// YouTubeDir returns the directory holding full downloaded videos.
func (s *Store) YouTubeDir() string { return s.youtubeDir }

// TalksDir returns the directory holding per-talk artifacts.
func (s *Store) TalksDir() string { return s.talksDir }

// EnsureDirectories creates both artifact roots.
func (s *Store) EnsureDirectories() error {
	for _, dir := range []string{s.youtubeDir, s.talksDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact directory %q: %w", dir, err)
		}
	}
	return nil
}

// SanitizeTitle replaces every rune outside [A-Za-z0-9] with an underscore.
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// VideoPath is the downloaded source video for a video ID.
func (s *Store) VideoPath(videoID string) string {
	return filepath.Join(s.youtubeDir, videoID+videoExt)
}

// TalkBase is the extensionless path every talk artifact derives from.
func (s *Store) TalkBase(title string) string {
	return filepath.Join(s.talksDir, SanitizeTitle(title))
}

// ClipPath is the trimmed talk video.
func (s *Store) ClipPath(title string) string { return s.TalkBase(title) + videoExt }

// AudioPath is the audio extracted from the clip.
func (s *Store) AudioPath(title string) string { return s.TalkBase(title) + audioExt }

// TranscriptPath is the plain text transcript.
func (s *Store) TranscriptPath(title string) string { return s.TalkBase(title) + transcriptExt }

// SummaryPath is the Markdown description and article.
func (s *Store) SummaryPath(title string) string { return s.TalkBase(title) + summaryExt }

// Exists reports whether an artifact is already present.
func (s *Store) Exists(path string) (bool, error) {
	return fileutil.Exists(path)
}

// Produce lets fn write to a temporary sibling of path and commits it on success.
func (s *Store) Produce(path string, fn func(tmp string) error) error {
	if err := fileutil.Commit(path, fn); err != nil {
		return err
	}
	s.committed(path)
	return nil
}

// WriteFile commits data to path.
func (s *Store) WriteFile(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return err
	}
	s.committed(path)
	return nil
}

// Stream copies r to path and commits it once the reader is drained.
func (s *Store) Stream(path string, r io.Reader) (int64, error) {
	n, err := fileutil.StreamToFile(path, r)
	if err != nil {
		return n, err
	}
	s.committed(path)
	return n, nil
}

func (s *Store) committed(path string) {
	if s.onCommit != nil {
		s.onCommit(path)
	}
}
