package job

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"talkclip/internal/services"
)

// Request holds the three command line arguments exactly as given.
type Request struct {
	URL        string
	Timestamps string
	Title      string
}

// Validate reports missing arguments as invalid input.
func (r Request) Validate() error {
	var missing []string
	if strings.TrimSpace(r.URL) == "" {
		missing = append(missing, "url")
	}
	if strings.TrimSpace(r.Timestamps) == "" {
		missing = append(missing, "timestamps")
	}
	if strings.TrimSpace(r.Title) == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return services.Wrap(services.ErrInvalidInput, "pipeline", "validate request",
			"missing "+strings.Join(missing, ", "), nil)
	}
	return nil
}

// Job is the in-memory record of one pipeline run. Each stage reads the fields
// filled by earlier stages and records its own outputs.
type Job struct {
	ID        string
	Request   Request
	StartedAt time.Time

	VideoID   string
	VideoPath string

	Start     int
	End       int
	TalkBase  string
	ClipPath  string
	AudioPath string

	TranscriptPath string
	JobName        string

	SummaryPath string
}

// New creates a Job with a fresh run ID.
func New(req Request) *Job {
	return &Job{
		ID:        uuid.NewString(),
		Request:   req,
		StartedAt: time.Now().UTC(),
	}
}

// Title returns the trimmed talk title.
func (j *Job) Title() string {
	return strings.TrimSpace(j.Request.Title)
}
