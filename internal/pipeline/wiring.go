package pipeline

import (
	"context"
	"io"
	"log/slog"

	"talkclip/internal/artifacts"
	"talkclip/internal/config"
	"talkclip/internal/deps"
	"talkclip/internal/ledger"
	"talkclip/internal/logging"
	"talkclip/internal/media"
	"talkclip/internal/services"
	awsclients "talkclip/internal/services/aws"
	"talkclip/internal/services/llm"
	"talkclip/internal/services/youtube"
	"talkclip/internal/transcription"
)

// NewFromConfig builds a Runner backed by the real YouTube, ffmpeg, AWS, and
// Anthropic clients. The returned closer releases the run ledger.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger, console io.Writer) (*Runner, io.Closer, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	clients, err := awsclients.New(ctx, awsclients.Settings{
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
	})
	if err != nil {
		return nil, nil, services.Wrap(services.ErrConfiguration, "pipeline", "aws clients", "", err)
	}

	d := Dependencies{
		Store: artifacts.New(cfg.Paths.YouTubeDir, cfg.Paths.TalksDir,
			artifacts.WithCommitHook(func(path string) {
				logger.Debug("artifact committed", logging.String(logging.FieldArtifact, path))
			}),
		),
		Source: youtube.NewClient(nil),
		Media: media.NewFFmpeg(media.Options{
			Binary:          cfg.Media.FFmpegBinary,
			AudioBitrate:    cfg.Media.AudioBitrate,
			AudioSampleRate: cfg.Media.AudioSampleRate,
		}),
		Objects: clients.S3,
		Jobs:    clients.Transcribe,
		LLM: llm.NewClient(llm.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			MaxTokens:      cfg.LLM.MaxTokens,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		}),
		Transcription: transcription.Settings{
			Bucket:       cfg.AWS.Bucket,
			AudioPrefix:  cfg.AWS.AudioPrefix,
			LanguageCode: cfg.AWS.LanguageCode,
			PollInterval: cfg.PollInterval(),
		},
		ProgressInterval: cfg.ProgressInterval(),
		CheckFFmpeg: func(ctx context.Context) deps.Status {
			return deps.CheckFFmpeg(ctx, cfg.Media.FFmpegBinary)
		},
		Logger:  logger,
		Console: console,
	}

	var closer io.Closer = nopCloser{}
	if cfg.History.Enabled {
		store, err := ledger.Open(cfg.LedgerPath())
		if err != nil {
			logger.Warn("run history disabled", logging.String("path", cfg.LedgerPath()), logging.Error(err))
		} else {
			d.Ledger = store
			closer = store
		}
	}

	runner, err := New(d)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return runner, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
