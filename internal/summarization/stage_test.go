package summarization

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"talkclip/internal/artifacts"
	"talkclip/internal/job"
	"talkclip/internal/logging"
	"talkclip/internal/services"
)

type fakeCompleter struct {
	replies   []string
	prompts   []string
	err       error
	healthErr error
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.prompts) > len(f.replies) {
		return "", nil
	}
	return f.replies[len(f.prompts)-1], nil
}

func (f *fakeCompleter) HealthCheck(context.Context) error { return f.healthErr }

func setup(t *testing.T, llm Completer) (*Stage, *job.Job) {
	t.Helper()
	root := t.TempDir()
	store := artifacts.New(filepath.Join(root, "__youtube"), filepath.Join(root, "__talks"))
	if err := store.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	j := job.New(job.Request{URL: "https://youtube.com/watch?v=abc123", Timestamps: "0,10", Title: "Test Talk"})
	j.TalkBase = store.TalkBase(j.Title())
	j.TranscriptPath = store.TranscriptPath(j.Title())
	st := New(store, llm, logging.NewNop())
	if err := st.Prepare(context.Background(), j); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	return st, j
}

func writeTranscript(t *testing.T, j *job.Job, text string) {
	t.Helper()
	if err := os.WriteFile(j.TranscriptPath, []byte(text), 0o644); err != nil {
		t.Fatalf("seed transcript: %v", err)
	}
}

func TestStageWritesSummary(t *testing.T) {
	llm := &fakeCompleter{replies: []string{"A short description.", "A long article.\n\nQ&A: none."}}
	st, j := setup(t, llm)
	writeTranscript(t, j, "hello everyone")

	if err := st.Execute(context.Background(), j); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	data, err := os.ReadFile(j.SummaryPath)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	want := "# Test_Talk\n\n## Description\nA short description.\n\n## Article\nA long article.\n\nQ&A: none.\n"
	if string(data) != want {
		t.Fatalf("unexpected summary\n got: %q\nwant: %q", data, want)
	}

	if len(llm.prompts) != 2 {
		t.Fatalf("expected 2 llm calls, got %d", len(llm.prompts))
	}
	for _, p := range llm.prompts {
		if !strings.Contains(p, "hello everyone") || !strings.HasPrefix(p, transcriptPreamble) {
			t.Fatalf("prompt missing transcript or preamble: %q", p)
		}
	}
	if !strings.Contains(llm.prompts[0], DescriptionInstruction) {
		t.Fatalf("first prompt should ask for a description: %q", llm.prompts[0])
	}
	if !strings.Contains(llm.prompts[1], ArticleInstruction) {
		t.Fatalf("second prompt should ask for an article: %q", llm.prompts[1])
	}
}

func TestStageEmptySectionsWhenNoText(t *testing.T) {
	llm := &fakeCompleter{}
	st, j := setup(t, llm)
	writeTranscript(t, j, "transcript")

	if err := st.Execute(context.Background(), j); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	data, _ := os.ReadFile(j.SummaryPath)
	if string(data) != "# Test_Talk\n\n## Description\n\n\n## Article\n\n" {
		t.Fatalf("unexpected summary %q", data)
	}
}

func TestStageSkipsExistingSummary(t *testing.T) {
	llm := &fakeCompleter{replies: []string{"d", "a"}}
	st, j := setup(t, llm)
	writeTranscript(t, j, "transcript")
	if err := os.WriteFile(j.SummaryPath, []byte("cached"), 0o644); err != nil {
		t.Fatalf("seed summary: %v", err)
	}

	if err := st.Execute(context.Background(), j); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(llm.prompts) != 0 {
		t.Fatalf("expected no llm calls, got %d", len(llm.prompts))
	}
	data, _ := os.ReadFile(j.SummaryPath)
	if string(data) != "cached" {
		t.Fatalf("existing summary was modified: %q", data)
	}
}

func TestStageMissingTranscript(t *testing.T) {
	llm := &fakeCompleter{}
	st, j := setup(t, llm)

	err := st.Execute(context.Background(), j)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(llm.prompts) != 0 {
		t.Fatal("expected no llm calls without a transcript")
	}
}

func TestStageLLMFailureWritesNothing(t *testing.T) {
	llm := &fakeCompleter{err: errors.New("llm request: http 529: overloaded")}
	st, j := setup(t, llm)
	writeTranscript(t, j, "transcript")

	err := st.Execute(context.Background(), j)
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
	if _, statErr := os.Stat(j.SummaryPath); !os.IsNotExist(statErr) {
		t.Fatal("expected no summary after llm failure")
	}
}

func TestStageHealthCheck(t *testing.T) {
	llm := &fakeCompleter{}
	st, _ := setup(t, llm)
	if h := st.HealthCheck(context.Background()); !h.Ready {
		t.Fatalf("expected ready, got %+v", h)
	}
	llm.healthErr = errors.New("llm api key not configured")
	h := st.HealthCheck(context.Background())
	if h.Ready || !strings.Contains(h.Detail, "api key") {
		t.Fatalf("expected unhealthy with detail, got %+v", h)
	}
}
