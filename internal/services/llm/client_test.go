package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type capturedRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func messageServer(t *testing.T, content []map[string]any, captured *capturedRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("unexpected api key header %q", got)
		}
		if captured != nil {
			if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		payload := map[string]any{
			"id":            "msg_test",
			"type":          "message",
			"role":          "assistant",
			"model":         "claude-3-opus-20240229",
			"content":       content,
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"usage":         map[string]any{"input_tokens": 10, "output_tokens": 5},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClientCompleteReturnsFirstTextBlock(t *testing.T) {
	var captured capturedRequest
	server := messageServer(t, []map[string]any{
		{"type": "text", "text": "A talk about Go."},
		{"type": "text", "text": "ignored"},
	}, &captured)

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	got, err := client.Complete(context.Background(), "summarize this")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got != "A talk about Go." {
		t.Fatalf("unexpected completion %q", got)
	}
	if captured.Model != defaultModel {
		t.Fatalf("expected default model, got %q", captured.Model)
	}
	if captured.MaxTokens != defaultMaxTokens {
		t.Fatalf("expected max_tokens %d, got %d", defaultMaxTokens, captured.MaxTokens)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" {
		t.Fatalf("expected a single user message, got %+v", captured.Messages)
	}
	if blocks := captured.Messages[0].Content; len(blocks) != 1 || blocks[0].Text != "summarize this" {
		t.Fatalf("unexpected message content %+v", blocks)
	}
}

func TestClientCompleteNonTextFirstBlock(t *testing.T) {
	server := messageServer(t, []map[string]any{
		{"type": "tool_use", "id": "toolu_1", "name": "lookup", "input": map[string]any{}},
		{"type": "text", "text": "later text"},
	}, nil)

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	got, err := client.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text for non-text block, got %q", got)
	}
}

func TestClientCompleteCustomModel(t *testing.T) {
	var captured capturedRequest
	server := messageServer(t, []map[string]any{{"type": "text", "text": "ok"}}, &captured)

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL + "/", Model: "claude-sonnet", MaxTokens: 2048})
	if _, err := client.Complete(context.Background(), "prompt"); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if captured.Model != "claude-sonnet" || captured.MaxTokens != 2048 {
		t.Fatalf("unexpected request model=%q max_tokens=%d", captured.Model, captured.MaxTokens)
	}
}

func TestClientCompleteHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, WithMaxRetries(0))
	_, err := client.Complete(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "http 401") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestClientRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	if _, err := client.Complete(context.Background(), "prompt"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := client.HealthCheck(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected HealthCheck to report ErrNotConfigured, got %v", err)
	}
}

func TestClientHealthCheckConfigured(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
	if client.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", client.Model())
	}
}
