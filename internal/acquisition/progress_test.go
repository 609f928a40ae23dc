package acquisition

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestProgressWriterReportsWholeMegabytes(t *testing.T) {
	var out bytes.Buffer
	p := newProgressWriter(&out, time.Nanosecond)

	chunk := make([]byte, bytesPerMB/2)
	for i := 0; i < 5; i++ {
		time.Sleep(time.Millisecond)
		if _, err := p.Write(chunk); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
	}
	p.Finish()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		"Download progress: 0MB",
		"Download progress: 1MB",
		"Download progress: 2MB",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if p.Total() != int64(5*len(chunk)) {
		t.Fatalf("unexpected total %d", p.Total())
	}
}

func TestProgressWriterThrottles(t *testing.T) {
	var out bytes.Buffer
	p := newProgressWriter(&out, time.Hour)

	chunk := make([]byte, bytesPerMB)
	for i := 0; i < 4; i++ {
		_, _ = p.Write(chunk)
	}
	if got := strings.Count(out.String(), "\n"); got != 1 {
		t.Fatalf("expected a single throttled line before Finish, got %q", out.String())
	}
	p.Finish()
	if !strings.HasSuffix(out.String(), "Download progress: 4MB\n") {
		t.Fatalf("expected final total after Finish, got %q", out.String())
	}
}

func TestProgressWriterNilOutput(t *testing.T) {
	p := newProgressWriter(nil, time.Millisecond)
	if _, err := p.Write([]byte("abc")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	p.Finish()
}
