package acquisition

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"talkclip/internal/artifacts"
	"talkclip/internal/fileutil"
	"talkclip/internal/job"
	"talkclip/internal/logging"
	"talkclip/internal/services"
)

type fakeSource struct {
	data    []byte
	openErr error
	readErr error
	calls   []string
}

func (f *fakeSource) Open(_ context.Context, videoID string) (io.ReadCloser, int64, error) {
	f.calls = append(f.calls, videoID)
	if f.openErr != nil {
		return nil, 0, f.openErr
	}
	var r io.Reader = bytes.NewReader(f.data)
	if f.readErr != nil {
		r = io.MultiReader(r, &failingReader{err: f.readErr})
	}
	return io.NopCloser(r), int64(len(f.data)), nil
}

type failingReader struct{ err error }

func (r *failingReader) Read([]byte) (int, error) { return 0, r.err }

func newTestStage(t *testing.T, source Source) (*Stage, *artifacts.Store, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	store := artifacts.New(filepath.Join(root, "__youtube"), filepath.Join(root, "__talks"))
	if err := store.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	var progress bytes.Buffer
	st := New(store, source, logging.NewNop(), WithProgressOutput(&progress))
	return st, store, &progress
}

func newJob(url string) *job.Job {
	return job.New(job.Request{URL: url, Timestamps: "00:00:10,00:00:20", Title: "Test Talk"})
}

func TestStageDownloadsVideo(t *testing.T) {
	source := &fakeSource{data: []byte("video-bytes")}
	st, store, progress := newTestStage(t, source)
	j := newJob("https://youtube.com/watch?v=abc123")

	if err := st.Prepare(context.Background(), j); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	if j.VideoID != "abc123" {
		t.Fatalf("expected video id abc123, got %q", j.VideoID)
	}
	if j.VideoPath != store.VideoPath("abc123") {
		t.Fatalf("unexpected video path %q", j.VideoPath)
	}
	if err := st.Execute(context.Background(), j); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	data, err := os.ReadFile(j.VideoPath)
	if err != nil {
		t.Fatalf("read video: %v", err)
	}
	if string(data) != "video-bytes" {
		t.Fatalf("unexpected video contents %q", data)
	}
	if len(source.calls) != 1 || source.calls[0] != "abc123" {
		t.Fatalf("unexpected source calls %v", source.calls)
	}
	if !strings.Contains(progress.String(), "Download progress: 0MB") {
		t.Fatalf("expected progress output, got %q", progress.String())
	}
}

func TestStageSkipsExistingVideo(t *testing.T) {
	source := &fakeSource{data: []byte("video-bytes")}
	st, store, _ := newTestStage(t, source)
	j := newJob("https://youtu.be/abc123")
	if err := st.Prepare(context.Background(), j); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	if err := os.WriteFile(store.VideoPath("abc123"), []byte("cached"), 0o644); err != nil {
		t.Fatalf("seed video: %v", err)
	}

	if err := st.Execute(context.Background(), j); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(source.calls) != 0 {
		t.Fatalf("expected no downloads, got %d", len(source.calls))
	}
	data, _ := os.ReadFile(j.VideoPath)
	if string(data) != "cached" {
		t.Fatalf("existing video was modified: %q", data)
	}
}

func TestStageRejectsInvalidURL(t *testing.T) {
	source := &fakeSource{}
	st, _, _ := newTestStage(t, source)
	j := newJob("https://vimeo.com/123")

	err := st.Prepare(context.Background(), j)
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(source.calls) != 0 {
		t.Fatal("expected no download attempts")
	}
}

func TestStageOpenFailure(t *testing.T) {
	source := &fakeSource{openErr: errors.New("403 forbidden")}
	st, _, _ := newTestStage(t, source)
	j := newJob("https://youtube.com/watch?v=abc123")
	if err := st.Prepare(context.Background(), j); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}

	err := st.Execute(context.Background(), j)
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
	if ok, _ := fileutil.Exists(j.VideoPath); ok {
		t.Fatal("expected no video file after failed open")
	}
}

func TestStageStreamFailureLeavesNoFile(t *testing.T) {
	source := &fakeSource{data: []byte("partial"), readErr: errors.New("connection reset")}
	st, _, _ := newTestStage(t, source)
	j := newJob("https://youtube.com/watch?v=abc123")
	if err := st.Prepare(context.Background(), j); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}

	err := st.Execute(context.Background(), j)
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
	for _, path := range []string{j.VideoPath, fileutil.PartialPath(j.VideoPath)} {
		if ok, _ := fileutil.Exists(path); ok {
			t.Fatalf("expected %s to be absent", path)
		}
	}
}

func TestStageHealthCheck(t *testing.T) {
	st, _, _ := newTestStage(t, &fakeSource{})
	if h := st.HealthCheck(context.Background()); !h.Ready {
		t.Fatalf("expected healthy stage, got %+v", h)
	}
	st.source = nil
	if h := st.HealthCheck(context.Background()); h.Ready {
		t.Fatal("expected unhealthy stage without a source")
	}
}
