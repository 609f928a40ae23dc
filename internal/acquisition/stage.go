package acquisition

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"talkclip/internal/artifacts"
	"talkclip/internal/job"
	"talkclip/internal/logging"
	"talkclip/internal/services"
	"talkclip/internal/services/youtube"
	"talkclip/internal/stage"
)

const stageName = "acquisition"

// Source opens a byte stream of a video by ID. The size is zero when unknown.
type Source interface {
	Open(ctx context.Context, videoID string) (io.ReadCloser, int64, error)
}

// Stage downloads the source video into the artifact store.
type Stage struct {
	store    *artifacts.Store
	source   Source
	logger   *slog.Logger
	progress io.Writer
	interval time.Duration
}

// Option customizes a Stage.
type Option func(*Stage)

// WithProgressOutput sends download progress to w instead of stdout.
func WithProgressOutput(w io.Writer) Option {
	return func(s *Stage) {
		s.progress = w
	}
}

// WithProgressInterval throttles progress output to at most one line per d.
func WithProgressInterval(d time.Duration) Option {
	return func(s *Stage) {
		if d > 0 {
			s.interval = d
		}
	}
}

// New builds the acquisition stage.
func New(store *artifacts.Store, source Source, logger *slog.Logger, opts ...Option) *Stage {
	s := &Stage{
		store:    store,
		source:   source,
		progress: os.Stdout,
		interval: defaultProgressInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetLogger(logger)
	return s
}

// SetLogger updates the stage logger while preserving component labeling.
func (s *Stage) SetLogger(logger *slog.Logger) {
	s.logger = logging.NewComponentLogger(logger, stageName)
}

// Prepare validates the URL and resolves the video ID and download path.
func (s *Stage) Prepare(_ context.Context, j *job.Job) error {
	if !youtube.ValidateURL(j.Request.URL) {
		return services.Wrap(services.ErrInvalidInput, stageName, "validate url",
			fmt.Sprintf("Invalid YouTube URL %q", j.Request.URL), nil)
	}
	id, err := youtube.VideoID(j.Request.URL)
	if err != nil {
		return services.Wrap(services.ErrInvalidInput, stageName, "extract video id", "", err)
	}
	j.VideoID = id
	j.VideoPath = s.store.VideoPath(id)
	return nil
}

// Execute downloads the video unless it is already in the store.
func (s *Stage) Execute(ctx context.Context, j *job.Job) error {
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldArtifact, j.VideoPath))
	if err := stage.RequirePath(stageName, "video path", j.VideoPath); err != nil {
		return err
	}

	exists, err := s.store.Exists(j.VideoPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, stageName, "inspect video", "", err)
	}
	if exists {
		logger.Info("youtube video found", logging.String("video_id", j.VideoID))
		return nil
	}

	start := time.Now()
	stream, size, err := s.source.Open(ctx, j.VideoID)
	if err != nil {
		return services.Wrap(services.ErrExternalService, stageName, "open stream",
			fmt.Sprintf("Unable to fetch video %s", j.VideoID), err)
	}
	defer stream.Close()
	logger.Debug("download started", logging.Int64("expected_bytes", size))

	counter := newProgressWriter(s.progress, s.interval)
	written, err := s.store.Stream(j.VideoPath, io.TeeReader(stream, counter))
	counter.Finish()
	if err != nil {
		return services.Wrap(services.ErrExternalService, stageName, "download",
			fmt.Sprintf("Download of %s interrupted after %d bytes", j.VideoID, written), err)
	}

	logger.Info("youtube video downloaded",
		logging.String("video_id", j.VideoID),
		logging.Int64("bytes", written),
		logging.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// HealthCheck reports whether the stage has what it needs to run.
func (s *Stage) HealthCheck(context.Context) stage.Health {
	if s.store == nil {
		return stage.Unhealthy(stageName, "artifact store unavailable")
	}
	if s.source == nil {
		return stage.Unhealthy(stageName, "video source unavailable")
	}
	return stage.Healthy(stageName)
}
