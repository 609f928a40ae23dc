package transcription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const maxTranscriptBytes = 64 << 20

// document is the subset of the Transcribe output JSON the stage reads.
type document struct {
	JobName string `json:"jobName"`
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

// decodeTranscript extracts results.transcripts[0].transcript.
func decodeTranscript(r io.Reader) (string, error) {
	var doc document
	if err := json.NewDecoder(io.LimitReader(r, maxTranscriptBytes)).Decode(&doc); err != nil {
		return "", fmt.Errorf("decode transcript document: %w", err)
	}
	if len(doc.Results.Transcripts) == 0 {
		return "", errors.New("transcript document has no transcripts")
	}
	return doc.Results.Transcripts[0].Transcript, nil
}

// objectLocation identifies an S3 object parsed from a transcript URI.
type objectLocation struct {
	Bucket string
	Key    string
}

// parseS3URI recognizes s3:// URIs plus path-style and virtual-hosted-style
// HTTPS URLs on amazonaws.com.
func parseS3URI(raw string) (objectLocation, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return objectLocation{}, false
	}
	if u.Scheme == "s3" {
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return objectLocation{}, false
		}
		return objectLocation{Bucket: u.Host, Key: key}, true
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return objectLocation{}, false
	}
	host := strings.ToLower(u.Hostname())
	if !strings.HasSuffix(host, ".amazonaws.com") {
		return objectLocation{}, false
	}
	path := strings.TrimPrefix(u.Path, "/")

	// Virtual-hosted style: <bucket>.s3.<region>.amazonaws.com/<key>.
	for _, marker := range []string{".s3.", ".s3-"} {
		if idx := strings.LastIndex(host, marker); idx > 0 {
			if path == "" {
				return objectLocation{}, false
			}
			return objectLocation{Bucket: host[:idx], Key: path}, true
		}
	}

	// Path style: s3.amazonaws.com/<bucket>/<key>, s3.<region>.amazonaws.com/<bucket>/<key>,
	// s3-<region>.amazonaws.com/<bucket>/<key>.
	if strings.HasPrefix(host, "s3.") || strings.HasPrefix(host, "s3-") {
		bucket, key, ok := strings.Cut(path, "/")
		if !ok || bucket == "" || key == "" {
			return objectLocation{}, false
		}
		return objectLocation{Bucket: bucket, Key: key}, true
	}
	return objectLocation{}, false
}

// fetcher retrieves the transcript document behind a result URI.
type fetcher struct {
	objects    ObjectStore
	bucket     string
	httpClient *http.Client
}

func (f fetcher) fetch(ctx context.Context, uri string) (string, error) {
	if strings.TrimSpace(uri) == "" {
		return "", errors.New("transcription job returned no transcript uri")
	}
	if loc, ok := parseS3URI(uri); ok && loc.Bucket == f.bucket && f.objects != nil {
		out, err := f.objects.GetObject(ctx, &s3.GetObjectInput{
			Bucket: sdkaws.String(loc.Bucket),
			Key:    sdkaws.String(loc.Key),
		})
		if err != nil {
			return "", fmt.Errorf("get s3://%s/%s: %w", loc.Bucket, loc.Key, err)
		}
		defer out.Body.Close()
		return decodeTranscript(out.Body)
	}
	return f.fetchHTTP(ctx, uri)
}

func (f fetcher) fetchHTTP(ctx context.Context, uri string) (string, error) {
	client := f.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", fmt.Errorf("build transcript request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("fetch transcript: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return decodeTranscript(resp.Body)
}
