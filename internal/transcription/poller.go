package transcription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Job states reported by the transcription service.
const (
	StateQueued     = "QUEUED"
	StateInProgress = "IN_PROGRESS"
	StateCompleted  = "COMPLETED"
	StateFailed     = "FAILED"
)

// DefaultPollInterval is the pause before every status read.
const DefaultPollInterval = 5 * time.Second

// JobStatus is one observation of a transcription job.
type JobStatus struct {
	State         string
	TranscriptURI string
	FailureReason string
}

// StatusSource reads the current status of a job.
type StatusSource interface {
	Status(ctx context.Context, jobName string) (JobStatus, error)
}

// SleepFunc pauses for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

type phase int

const (
	phasePending phase = iota
	phaseSucceeded
	phaseFailed
)

func advance(state string) phase {
	switch strings.ToUpper(strings.TrimSpace(state)) {
	case StateQueued, StateInProgress:
		return phasePending
	case StateCompleted:
		return phaseSucceeded
	default:
		return phaseFailed
	}
}

// errJobFailed is returned by Poller.Wait when the job ends in any state other
// than COMPLETED. The stage maps it to services.ErrTranscriptionFailed.
var errJobFailed = errors.New("transcription job did not complete")

// Poller waits for a job to reach a terminal state. It sleeps Interval before
// each status read and keeps polling while the job is queued or in progress.
type Poller struct {
	Source   StatusSource
	Sleep    SleepFunc
	Interval time.Duration
	// OnStatus, when set, observes every status read.
	OnStatus func(attempt int, status JobStatus)
}

// Wait polls until the job completes, fails, or ctx ends. A completed job
// returns its final status; any other terminal state returns an error wrapping
// errJobFailed alongside the status that ended the loop.
func (p *Poller) Wait(ctx context.Context, jobName string) (JobStatus, error) {
	if p.Source == nil {
		return JobStatus{}, errors.New("poller: status source unavailable")
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	for attempt := 1; ; attempt++ {
		if err := sleep(ctx, interval); err != nil {
			return JobStatus{}, err
		}
		status, err := p.Source.Status(ctx, jobName)
		if err != nil {
			return JobStatus{}, err
		}
		if p.OnStatus != nil {
			p.OnStatus(attempt, status)
		}
		switch advance(status.State) {
		case phasePending:
			continue
		case phaseSucceeded:
			return status, nil
		default:
			reason := strings.TrimSpace(status.FailureReason)
			if reason == "" {
				reason = "no reason given"
			}
			return status, fmt.Errorf("%w: job %s ended %s: %s", errJobFailed, jobName, status.State, reason)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
