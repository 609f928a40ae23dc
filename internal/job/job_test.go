package job

import (
	"errors"
	"strings"
	"testing"

	"talkclip/internal/services"
)

func TestRequestValidate(t *testing.T) {
	ok := Request{URL: "https://youtube.com/watch?v=abc123", Timestamps: "1,2", Title: "Talk"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Request{URL: "u", Title: "  "}.Validate()
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if !strings.Contains(err.Error(), "timestamps, title") {
		t.Fatalf("expected missing field names, got %q", err)
	}
}

func TestNewAssignsDistinctIDs(t *testing.T) {
	a := New(Request{Title: " Talk "})
	b := New(Request{Title: "Talk"})
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct run IDs, got %q and %q", a.ID, b.ID)
	}
	if a.Title() != "Talk" {
		t.Fatalf("unexpected title %q", a.Title())
	}
	if a.StartedAt.IsZero() {
		t.Fatal("expected start time")
	}
}
