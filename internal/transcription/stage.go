package transcription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"

	"talkclip/internal/artifacts"
	"talkclip/internal/job"
	"talkclip/internal/logging"
	"talkclip/internal/services"
	"talkclip/internal/stage"
)

const (
	stageName = "transcription"

	defaultAudioPrefix  = "audio/"
	defaultLanguageCode = "en-US"
	jobNamePrefix       = "transcription-job-"
)

// Settings configures where audio is uploaded and how jobs are started.
type Settings struct {
	Bucket       string
	AudioPrefix  string
	LanguageCode string
	PollInterval time.Duration
}

// Stage uploads the talk audio, runs an AWS Transcribe job, and stores the text.
type Stage struct {
	store      *artifacts.Store
	objects    ObjectStore
	jobs       JobService
	settings   Settings
	logger     *slog.Logger
	sleep      SleepFunc
	now        func() time.Time
	httpClient *http.Client
}

// Option customizes a Stage.
type Option func(*Stage)

// WithSleep replaces the poll pause (for tests).
func WithSleep(fn SleepFunc) Option {
	return func(s *Stage) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

// WithClock replaces the clock used to name jobs (for tests).
func WithClock(now func() time.Time) Option {
	return func(s *Stage) {
		if now != nil {
			s.now = now
		}
	}
}

// WithHTTPClient sets the client used for transcript URIs outside the bucket.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Stage) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// New builds the transcription stage.
func New(store *artifacts.Store, objects ObjectStore, jobs JobService, settings Settings, logger *slog.Logger, opts ...Option) *Stage {
	settings.Bucket = strings.TrimSpace(settings.Bucket)
	if settings.AudioPrefix == "" {
		settings.AudioPrefix = defaultAudioPrefix
	}
	if strings.TrimSpace(settings.LanguageCode) == "" {
		settings.LanguageCode = defaultLanguageCode
	}
	if settings.PollInterval <= 0 {
		settings.PollInterval = DefaultPollInterval
	}
	s := &Stage{
		store:    store,
		objects:  objects,
		jobs:     jobs,
		settings: settings,
		sleep:    sleepContext,
		now:      time.Now,
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

// Prepare resolves the transcript path.
func (s *Stage) Prepare(_ context.Context, j *job.Job) error {
	j.TranscriptPath = s.store.TranscriptPath(j.Title())
	return nil
}

// Execute transcribes the talk audio unless a transcript already exists.
func (s *Stage) Execute(ctx context.Context, j *job.Job) error {
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldArtifact, j.TranscriptPath))
	if err := stage.RequirePath(stageName, "transcript path", j.TranscriptPath); err != nil {
		return err
	}

	exists, err := s.store.Exists(j.TranscriptPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, stageName, "inspect transcript", "", err)
	}
	if exists {
		logger.Info("transcript found, skipping transcription")
		return nil
	}

	if err := stage.RequirePath(stageName, "audio path", j.AudioPath); err != nil {
		return err
	}
	if s.settings.Bucket == "" {
		return services.Wrap(services.ErrConfiguration, stageName, "validate settings",
			"No S3 bucket configured; set aws.bucket or AWS_S3_BUCKET", nil)
	}

	key := s.settings.AudioPrefix + filepath.Base(j.AudioPath)
	if err := s.upload(ctx, j.AudioPath, key); err != nil {
		return err
	}
	mediaURI := fmt.Sprintf("s3://%s/%s", s.settings.Bucket, key)
	logger.Info("audio uploaded", logging.String("media_uri", mediaURI))

	j.JobName = fmt.Sprintf("%s%d", jobNamePrefix, s.now().UnixMilli())
	logger = logger.With(logging.String("job_name", j.JobName))
	if err := s.start(ctx, j.JobName, mediaURI); err != nil {
		return err
	}
	logger.Info("transcription job started", logging.String("language", s.settings.LanguageCode))

	started := time.Now()
	poller := &Poller{
		Source:   jobStatusSource{jobs: s.jobs},
		Sleep:    s.sleep,
		Interval: s.settings.PollInterval,
		OnStatus: func(attempt int, status JobStatus) {
			logger.Info("transcription job status",
				logging.String("status", status.State),
				logging.Int("attempt", attempt),
			)
		},
	}
	status, err := poller.Wait(ctx, j.JobName)
	if err != nil {
		if errors.Is(err, errJobFailed) {
			return services.Wrap(services.ErrTranscriptionFailed, stageName, "poll job", "", err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return services.Wrap(services.ErrExternalService, stageName, "poll job", "Cancelled while waiting for transcription", ctxErr)
		}
		return services.Wrap(services.ErrExternalService, stageName, "poll job", "", err)
	}
	logger.Info("transcription job completed", logging.Duration("elapsed", time.Since(started)))

	f := fetcher{objects: s.objects, bucket: s.settings.Bucket, httpClient: s.httpClient}
	text, err := f.fetch(ctx, status.TranscriptURI)
	if err != nil {
		return services.Wrap(services.ErrExternalService, stageName, "fetch transcript", "", err)
	}
	if err := s.store.WriteFile(j.TranscriptPath, []byte(text)); err != nil {
		return services.Wrap(services.ErrValidation, stageName, "write transcript", "", err)
	}
	logger.Info("transcript saved", logging.Int("characters", len(text)))
	return nil
}

func (s *Stage) upload(ctx context.Context, audioPath, key string) error {
	file, err := os.Open(audioPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, stageName, "open audio", "", err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return services.Wrap(services.ErrValidation, stageName, "stat audio", "", err)
	}

	_, err = s.objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        sdkaws.String(s.settings.Bucket),
		Key:           sdkaws.String(key),
		Body:          file,
		ContentLength: sdkaws.Int64(info.Size()),
		ContentType:   sdkaws.String("audio/mpeg"),
	})
	if err != nil {
		return services.Wrap(services.ErrExternalService, stageName, "upload audio",
			fmt.Sprintf("Upload to s3://%s/%s failed", s.settings.Bucket, key), err)
	}
	return nil
}

func (s *Stage) start(ctx context.Context, jobName, mediaURI string) error {
	_, err := s.jobs.StartTranscriptionJob(ctx, &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: sdkaws.String(jobName),
		LanguageCode:         types.LanguageCode(s.settings.LanguageCode),
		MediaFormat:          types.MediaFormatMp3,
		Media:                &types.Media{MediaFileUri: sdkaws.String(mediaURI)},
		OutputBucketName:     sdkaws.String(s.settings.Bucket),
	})
	if err != nil {
		return services.Wrap(services.ErrExternalService, stageName, "start job", "", err)
	}
	return nil
}

// HealthCheck reports whether the stage has what it needs to run.
func (s *Stage) HealthCheck(context.Context) stage.Health {
	switch {
	case s.store == nil:
		return stage.Unhealthy(stageName, "artifact store unavailable")
	case s.objects == nil:
		return stage.Unhealthy(stageName, "s3 client unavailable")
	case s.jobs == nil:
		return stage.Unhealthy(stageName, "transcribe client unavailable")
	case s.settings.Bucket == "":
		return stage.Unhealthy(stageName, "s3 bucket not configured")
	}
	return stage.Healthy(stageName)
}
