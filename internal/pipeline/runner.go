package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"talkclip/internal/acquisition"
	"talkclip/internal/artifacts"
	"talkclip/internal/deps"
	"talkclip/internal/job"
	"talkclip/internal/ledger"
	"talkclip/internal/logging"
	"talkclip/internal/media"
	"talkclip/internal/segmentation"
	"talkclip/internal/services"
	"talkclip/internal/stage"
	"talkclip/internal/stageexec"
	"talkclip/internal/summarization"
	"talkclip/internal/transcription"
)

const lockFileName = ".talkclip.lock"

// Ledger records runs. Every call is best effort.
type Ledger interface {
	Begin(ctx context.Context, run ledger.Run) error
	MarkStage(ctx context.Context, runID, stage string) error
	Finish(ctx context.Context, runID string, runErr error) error
}

// Dependencies carries every collaborator the stages need. Nothing in the
// pipeline reaches for globals; tests swap any of these for fakes.
type Dependencies struct {
	Store   *artifacts.Store
	Source  acquisition.Source
	Media   media.Tool
	Objects transcription.ObjectStore
	Jobs    transcription.JobService
	LLM     summarization.Completer

	Transcription transcription.Settings
	// ProgressInterval throttles download progress output.
	ProgressInterval time.Duration
	// Sleep and Clock override the transcription poll pause and job clock.
	Sleep transcription.SleepFunc
	Clock func() time.Time

	// CheckFFmpeg verifies ffmpeg before any stage runs. Nil skips the check.
	CheckFFmpeg func(ctx context.Context) deps.Status
	// Ledger is optional.
	Ledger Ledger

	Logger  *slog.Logger
	Console io.Writer
}

type step struct {
	name    string
	banner  string
	handler stage.Handler
}

// Runner drives one request through every stage in order.
type Runner struct {
	deps   Dependencies
	logger *slog.Logger
	steps  []step
}

// New wires the four stages from deps.
func New(d Dependencies) (*Runner, error) {
	switch {
	case d.Store == nil:
		return nil, errors.New("pipeline: artifact store is required")
	case d.Source == nil:
		return nil, errors.New("pipeline: video source is required")
	case d.Media == nil:
		return nil, errors.New("pipeline: media tool is required")
	case d.Objects == nil || d.Jobs == nil:
		return nil, errors.New("pipeline: s3 and transcribe clients are required")
	case d.LLM == nil:
		return nil, errors.New("pipeline: llm client is required")
	}
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}
	if d.Console == nil {
		d.Console = io.Discard
	}

	acqOpts := []acquisition.Option{
		acquisition.WithProgressOutput(d.Console),
		acquisition.WithProgressInterval(d.ProgressInterval),
	}
	var trOpts []transcription.Option
	if d.Sleep != nil {
		trOpts = append(trOpts, transcription.WithSleep(d.Sleep))
	}
	if d.Clock != nil {
		trOpts = append(trOpts, transcription.WithClock(d.Clock))
	}

	r := &Runner{
		deps:   d,
		logger: logging.NewComponentLogger(d.Logger, "pipeline"),
	}
	r.steps = []step{
		{
			name:    "acquisition",
			banner:  "Reading YouTube video...",
			handler: acquisition.New(d.Store, d.Source, d.Logger, acqOpts...),
		},
		{
			name:    "segmentation",
			banner:  "Extracting talk segment...",
			handler: segmentation.New(d.Store, d.Media, d.Logger),
		},
		{
			name:    "transcription",
			banner:  "Generating transcript...",
			handler: transcription.New(d.Store, d.Objects, d.Jobs, d.Transcription, d.Logger, trOpts...),
		},
		{
			name:    "summarization",
			banner:  "Generating AI summary and article...",
			handler: summarization.New(d.Store, d.LLM, d.Logger),
		},
	}
	return r, nil
}

// Health reports each stage's readiness.
func (r *Runner) Health(ctx context.Context) []stage.Health {
	out := make([]stage.Health, 0, len(r.steps))
	for _, s := range r.steps {
		out = append(out, s.handler.HealthCheck(ctx))
	}
	return out
}

// Run executes the pipeline for req. The returned job carries every artifact
// path resolved along the way, even on failure.
func (r *Runner) Run(ctx context.Context, req job.Request) (*job.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	j := job.New(req)
	ctx = services.WithRequestID(ctx, j.ID)
	logger := logging.WithContext(ctx, r.logger)

	named := make([]stageexec.Named, 0, len(r.steps))
	for _, s := range r.steps {
		named = append(named, stageexec.Named{Name: s.name, Handler: s.handler})
	}
	if err := stageexec.PrepareAll(ctx, j, named...); err != nil {
		logger.Error("request rejected", logging.String("error_kind", services.Kind(err)), logging.Error(err))
		return j, err
	}

	if err := r.deps.Store.EnsureDirectories(); err != nil {
		return j, services.Wrap(services.ErrConfiguration, "pipeline", "create directories", "", err)
	}
	logger.Debug("artifact directories ready",
		logging.String("youtube_dir", r.deps.Store.YouTubeDir()),
		logging.String("talks_dir", r.deps.Store.TalksDir()),
	)

	if r.deps.CheckFFmpeg != nil {
		status := r.deps.CheckFFmpeg(ctx)
		if !status.Available {
			return j, services.Wrap(services.ErrExternalTool, "pipeline", "check ffmpeg",
				"ffmpeg is not installed or not runnable: "+status.Detail, nil)
		}
		logger.Debug("ffmpeg available", logging.String("version", status.Version))
	}

	unlock, err := r.lock()
	if err != nil {
		return j, err
	}
	defer unlock()

	r.begin(ctx, logger, j)
	runErr := r.runStages(ctx, j)
	r.finish(logger, j, runErr)
	if runErr != nil {
		return j, runErr
	}

	fmt.Fprintln(r.deps.Console, "\nProcess completed successfully")
	fmt.Fprintf(r.deps.Console, "Output files are in: %s.*\n", j.TalkBase)
	logger.Info("pipeline completed",
		logging.String(logging.FieldArtifact, j.TalkBase),
		logging.Duration("elapsed", time.Since(j.StartedAt)),
	)
	return j, nil
}

func (r *Runner) runStages(ctx context.Context, j *job.Job) error {
	var recorder stageexec.Recorder
	if r.deps.Ledger != nil {
		recorder = r.deps.Ledger
	}
	for i, s := range r.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := stageexec.Run(ctx, stageexec.Options{
			Logger:    r.deps.Logger,
			Recorder:  recorder,
			Handler:   s.handler,
			StageName: s.name,
			Step:      i + 1,
			Banner:    s.banner,
			Console:   r.deps.Console,
			Job:       j,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// lock takes an exclusive lock on the talks directory so two runs never
// write the same artifacts.
func (r *Runner) lock() (func(), error) {
	path := filepath.Join(r.deps.Store.TalksDir(), lockFileName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "acquire lock", path, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "acquire lock",
			fmt.Sprintf("another talkclip run is using %s", r.deps.Store.TalksDir()), nil)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			r.logger.Warn("failed to release workspace lock", logging.Error(err))
		}
	}, nil
}

func (r *Runner) begin(ctx context.Context, logger *slog.Logger, j *job.Job) {
	if r.deps.Ledger == nil {
		return
	}
	err := r.deps.Ledger.Begin(ctx, ledger.Run{
		ID:         j.ID,
		URL:        j.Request.URL,
		VideoID:    j.VideoID,
		Title:      j.Title(),
		Timestamps: j.Request.Timestamps,
		TalkBase:   j.TalkBase,
		StartedAt:  j.StartedAt,
	})
	if err != nil {
		logger.Warn("failed to record run start", logging.Error(err))
	}
}

func (r *Runner) finish(logger *slog.Logger, j *job.Job, runErr error) {
	if r.deps.Ledger == nil {
		return
	}
	// The run context may already be cancelled; the ledger write still matters.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.deps.Ledger.Finish(ctx, j.ID, runErr); err != nil {
		logger.Warn("failed to record run result", logging.Error(err))
	}
}
