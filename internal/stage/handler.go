package stage

import (
	"context"
	"log/slog"

	"talkclip/internal/job"
)

// Handler describes the contract the pipeline needs from each stage.
//
// Prepare resolves the stage's artifact paths on the job without side effects
// beyond validation. Execute does the expensive work, and must return without
// external calls when the stage's artifact already exists.
type Handler interface {
	Prepare(context.Context, *job.Job) error
	Execute(context.Context, *job.Job) error
	HealthCheck(context.Context) Health
}

// LoggerAware is implemented by handlers that accept a per-run logger.
type LoggerAware interface {
	SetLogger(*slog.Logger)
}
