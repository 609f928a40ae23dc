package transcription

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeTranscript(t *testing.T) {
	text, err := decodeTranscript(strings.NewReader(string(transcriptDocument("job", "Hello and welcome."))))
	if err != nil {
		t.Fatalf("decodeTranscript returned error: %v", err)
	}
	if text != "Hello and welcome." {
		t.Fatalf("unexpected transcript %q", text)
	}

	if _, err := decodeTranscript(strings.NewReader(`{"results":{"transcripts":[]}}`)); err == nil {
		t.Fatal("expected error for empty transcripts")
	}
	if _, err := decodeTranscript(strings.NewReader(`not json`)); err == nil {
		t.Fatal("expected error for invalid json")
	}
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri    string
		bucket string
		key    string
		ok     bool
	}{
		{"https://s3.us-east-1.amazonaws.com/talks-bucket/transcription-job-1.json", "talks-bucket", "transcription-job-1.json", true},
		{"https://s3.amazonaws.com/talks-bucket/a/b.json", "talks-bucket", "a/b.json", true},
		{"https://s3-eu-west-1.amazonaws.com/talks-bucket/x.json", "talks-bucket", "x.json", true},
		{"https://talks-bucket.s3.us-west-2.amazonaws.com/x.json", "talks-bucket", "x.json", true},
		{"https://my.dotted.bucket.s3.amazonaws.com/x.json", "my.dotted.bucket", "x.json", true},
		{"s3://talks-bucket/audio/x.json", "talks-bucket", "audio/x.json", true},
		{"https://example.com/talks-bucket/x.json", "", "", false},
		{"https://s3.us-east-1.amazonaws.com/talks-bucket", "", "", false},
		{"ftp://s3.amazonaws.com/b/k", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			loc, ok := parseS3URI(tt.uri)
			if ok != tt.ok {
				t.Fatalf("parseS3URI ok = %v, want %v", ok, tt.ok)
			}
			if ok && (loc.Bucket != tt.bucket || loc.Key != tt.key) {
				t.Fatalf("parseS3URI = %+v, want %s/%s", loc, tt.bucket, tt.key)
			}
		})
	}
}

func TestFetcherUsesGetObjectForOwnBucket(t *testing.T) {
	objects := newFakeObjectStore()
	objects.objects[objectKey("talks-bucket", "job.json")] = transcriptDocument("job", "from s3")
	f := fetcher{objects: objects, bucket: "talks-bucket"}

	text, err := f.fetch(context.Background(), "https://s3.us-east-1.amazonaws.com/talks-bucket/job.json")
	if err != nil {
		t.Fatalf("fetch returned error: %v", err)
	}
	if text != "from s3" {
		t.Fatalf("unexpected transcript %q", text)
	}
	if len(objects.gets) != 1 {
		t.Fatalf("expected one GetObject call, got %d", len(objects.gets))
	}
}

func TestFetcherFallsBackToHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(transcriptDocument("job", "from http"))
	}))
	defer server.Close()

	objects := newFakeObjectStore()
	f := fetcher{objects: objects, bucket: "talks-bucket", httpClient: server.Client()}
	text, err := f.fetch(context.Background(), server.URL+"/presigned/job.json")
	if err != nil {
		t.Fatalf("fetch returned error: %v", err)
	}
	if text != "from http" {
		t.Fatalf("unexpected transcript %q", text)
	}
	if len(objects.gets) != 0 {
		t.Fatal("expected no GetObject calls for foreign URIs")
	}
}

func TestFetcherHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "AccessDenied", http.StatusForbidden)
	}))
	defer server.Close()

	f := fetcher{httpClient: server.Client()}
	_, err := f.fetch(context.Background(), server.URL+"/job.json")
	if err == nil || !strings.Contains(err.Error(), "http 403") {
		t.Fatalf("expected http 403 error, got %v", err)
	}
	if _, err := f.fetch(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty uri")
	}
}
