package stageexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"talkclip/internal/job"
	"talkclip/internal/logging"
	"talkclip/internal/services"
	"talkclip/internal/stage"
)

// Handler is the stage contract used by the execution helper.
type Handler interface {
	Prepare(context.Context, *job.Job) error
	Execute(context.Context, *job.Job) error
}

// Recorder persists stage transitions. Failures are logged, never returned.
type Recorder interface {
	MarkStage(ctx context.Context, runID, stage string) error
}

// Options controls stage execution and progress reporting.
type Options struct {
	Logger    *slog.Logger
	Recorder  Recorder
	Handler   Handler
	StageName string
	// Step and Banner produce the numbered console line, e.g. "2. Splitting video...".
	Step    int
	Banner  string
	Console io.Writer
	Job     *job.Job
}

// Run prepares and executes a stage, logging lifecycle events and recording
// the transition. The stage error is returned unchanged.
func Run(ctx context.Context, opts Options) error {
	if opts.Handler == nil {
		return fmt.Errorf("stage handler unavailable: %s", opts.StageName)
	}
	if opts.Job == nil {
		return errors.New("job is required")
	}

	stageCtx := logging.WithStage(ctx, opts.StageName)
	stageLogger := logging.WithContext(stageCtx, opts.Logger)
	if aware, ok := opts.Handler.(stage.LoggerAware); ok && opts.Logger != nil {
		aware.SetLogger(opts.Logger)
	}

	if opts.Console != nil && strings.TrimSpace(opts.Banner) != "" {
		fmt.Fprintf(opts.Console, "%d. %s\n", opts.Step, strings.TrimSpace(opts.Banner))
	}
	stageLogger.Info(
		"stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String("title", opts.Job.Title()),
		logging.String("video_id", opts.Job.VideoID),
	)
	if opts.Recorder != nil {
		if err := opts.Recorder.MarkStage(stageCtx, opts.Job.ID, opts.StageName); err != nil {
			stageLogger.Warn("failed to record stage transition", logging.Error(err))
		}
	}

	started := time.Now()
	if err := opts.Handler.Prepare(stageCtx, opts.Job); err != nil {
		return handleFailure(stageLogger, err)
	}
	if err := opts.Handler.Execute(stageCtx, opts.Job); err != nil {
		return handleFailure(stageLogger, err)
	}

	stageLogger.Info(
		"stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// Named pairs a handler with its stage name.
type Named struct {
	Name    string
	Handler Handler
}

// PrepareAll runs every handler's Prepare in order so that bad input is
// rejected before any stage does expensive work.
func PrepareAll(ctx context.Context, j *job.Job, stages ...Named) error {
	for _, s := range stages {
		if s.Handler == nil {
			return fmt.Errorf("stage handler unavailable: %s", s.Name)
		}
		if err := s.Handler.Prepare(logging.WithStage(ctx, s.Name), j); err != nil {
			return err
		}
	}
	return nil
}

func handleFailure(logger *slog.Logger, stageErr error) error {
	logger.Error(
		"stage failed",
		logging.String(logging.FieldEventType, "stage_failure"),
		logging.String("error_kind", services.Kind(stageErr)),
		logging.Error(stageErr),
	)
	return stageErr
}
