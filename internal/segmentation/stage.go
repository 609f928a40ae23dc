package segmentation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"talkclip/internal/artifacts"
	"talkclip/internal/job"
	"talkclip/internal/logging"
	"talkclip/internal/media"
	"talkclip/internal/services"
	"talkclip/internal/stage"
	"talkclip/internal/timecode"
)

const stageName = "segmentation"

// Stage cuts the talk out of the downloaded video and extracts its audio.
type Stage struct {
	store  *artifacts.Store
	tool   media.Tool
	logger *slog.Logger
}

// New builds the segmentation stage.
func New(store *artifacts.Store, tool media.Tool, logger *slog.Logger) *Stage {
	s := &Stage{store: store, tool: tool}
	s.SetLogger(logger)
	return s
}

// SetLogger updates the stage logger while preserving component labeling.
func (s *Stage) SetLogger(logger *slog.Logger) {
	s.logger = logging.NewComponentLogger(logger, stageName)
}

// Prepare parses the timestamp range and resolves the talk artifact paths.
func (s *Stage) Prepare(_ context.Context, j *job.Job) error {
	start, end, err := timecode.ParseRange(j.Request.Timestamps)
	if err != nil {
		return services.Wrap(services.ErrInvalidInput, stageName, "parse timestamps",
			fmt.Sprintf("Timestamps must look like HH:MM:SS,HH:MM:SS (got %q)", j.Request.Timestamps), err)
	}
	if start < 0 || end <= start {
		return services.Wrap(services.ErrInvalidInput, stageName, "parse timestamps",
			fmt.Sprintf("End (%ds) must be after start (%ds)", end, start), nil)
	}
	title := j.Title()
	if artifacts.SanitizeTitle(title) == "" {
		return services.Wrap(services.ErrInvalidInput, stageName, "resolve title", "Title is empty", nil)
	}
	j.Start = start
	j.End = end
	j.TalkBase = s.store.TalkBase(title)
	j.ClipPath = s.store.ClipPath(title)
	j.AudioPath = s.store.AudioPath(title)
	return nil
}

// Execute produces the clip and the audio extract, skipping whichever exists.
func (s *Stage) Execute(ctx context.Context, j *job.Job) error {
	logger := logging.WithContext(ctx, s.logger)
	if err := stage.RequirePath(stageName, "video path", j.VideoPath); err != nil {
		return err
	}
	if err := stage.RequirePath(stageName, "clip path", j.ClipPath); err != nil {
		return err
	}

	if err := s.ensureClip(ctx, logger, j); err != nil {
		return err
	}
	return s.ensureAudio(ctx, logger, j)
}

func (s *Stage) ensureClip(ctx context.Context, logger *slog.Logger, j *job.Job) error {
	logger = logger.With(logging.String(logging.FieldArtifact, j.ClipPath))
	exists, err := s.store.Exists(j.ClipPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, stageName, "inspect clip", "", err)
	}
	if exists {
		logger.Info("clip found, skipping trim")
		return nil
	}

	logger.Info(fmt.Sprintf("Splitting video from %ds to %ds", j.Start, j.End),
		logging.String("source", j.VideoPath),
		logging.Int("start_seconds", j.Start),
		logging.Int("end_seconds", j.End),
	)
	started := time.Now()
	err = s.store.Produce(j.ClipPath, func(tmp string) error {
		return s.tool.Trim(ctx, j.VideoPath, j.Start, j.End, tmp)
	})
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stageName, "trim",
			fmt.Sprintf("ffmpeg could not cut %s", j.VideoPath), err)
	}
	logger.Info("clip created", logging.Duration("elapsed", time.Since(started)))
	return nil
}

func (s *Stage) ensureAudio(ctx context.Context, logger *slog.Logger, j *job.Job) error {
	logger = logger.With(logging.String(logging.FieldArtifact, j.AudioPath))
	exists, err := s.store.Exists(j.AudioPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, stageName, "inspect audio", "", err)
	}
	if exists {
		logger.Info("audio found, skipping extraction")
		return nil
	}

	started := time.Now()
	err = s.store.Produce(j.AudioPath, func(tmp string) error {
		return s.tool.ExtractAudio(ctx, j.ClipPath, tmp)
	})
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stageName, "extract audio",
			fmt.Sprintf("ffmpeg could not extract audio from %s", j.ClipPath), err)
	}
	logger.Info("audio extracted", logging.Duration("elapsed", time.Since(started)))
	return nil
}

// HealthCheck reports whether the stage has what it needs to run.
func (s *Stage) HealthCheck(context.Context) stage.Health {
	if s.store == nil {
		return stage.Unhealthy(stageName, "artifact store unavailable")
	}
	if s.tool == nil {
		return stage.Unhealthy(stageName, "media tool unavailable")
	}
	return stage.Healthy(stageName)
}
