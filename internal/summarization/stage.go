package summarization

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"talkclip/internal/artifacts"
	"talkclip/internal/job"
	"talkclip/internal/logging"
	"talkclip/internal/services"
	"talkclip/internal/stage"
)

const stageName = "summarization"

// Completer answers a single prompt with text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// healthChecker is implemented by completers that can validate their setup.
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Stage writes the Markdown description and article for a transcript.
type Stage struct {
	store  *artifacts.Store
	llm    Completer
	logger *slog.Logger
}

// New builds the summarization stage.
func New(store *artifacts.Store, llm Completer, logger *slog.Logger) *Stage {
	s := &Stage{store: store, llm: llm}
	s.SetLogger(logger)
	return s
}

// SetLogger updates the stage logger while preserving component labeling.
func (s *Stage) SetLogger(logger *slog.Logger) {
	s.logger = logging.NewComponentLogger(logger, stageName)
}

// Prepare resolves the summary path.
func (s *Stage) Prepare(_ context.Context, j *job.Job) error {
	j.SummaryPath = s.store.SummaryPath(j.Title())
	return nil
}

// Execute generates the summary unless one already exists.
func (s *Stage) Execute(ctx context.Context, j *job.Job) error {
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldArtifact, j.SummaryPath))
	if err := stage.RequirePath(stageName, "summary path", j.SummaryPath); err != nil {
		return err
	}

	exists, err := s.store.Exists(j.SummaryPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, stageName, "inspect summary", "", err)
	}
	if exists {
		logger.Info("summary found, skipping generation")
		return nil
	}

	if err := stage.RequirePath(stageName, "transcript path", j.TranscriptPath); err != nil {
		return err
	}
	data, err := os.ReadFile(j.TranscriptPath)
	if err != nil {
		message := "Unable to read transcript"
		if errors.Is(err, fs.ErrNotExist) {
			message = "Transcript missing; rerun transcription"
		}
		return services.Wrap(services.ErrValidation, stageName, "read transcript", message, err)
	}
	transcript := string(data)

	started := time.Now()
	description, err := s.complete(ctx, "description", buildPrompt(transcript, DescriptionInstruction))
	if err != nil {
		return err
	}
	article, err := s.complete(ctx, "article", buildPrompt(transcript, ArticleInstruction))
	if err != nil {
		return err
	}

	base := filepath.Base(summaryBase(j))
	if err := s.store.WriteFile(j.SummaryPath, []byte(renderMarkdown(base, description, article))); err != nil {
		return services.Wrap(services.ErrValidation, stageName, "write summary", "", err)
	}
	logger.Info("Generated summary",
		logging.Int("description_chars", len(description)),
		logging.Int("article_chars", len(article)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func (s *Stage) complete(ctx context.Context, section, prompt string) (string, error) {
	text, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", services.Wrap(services.ErrExternalService, stageName, "generate "+section, "", err)
	}
	if text == "" {
		s.logger.Warn("llm returned no text", logging.String("section", section))
	}
	return text, nil
}

func summaryBase(j *job.Job) string {
	if j.TalkBase != "" {
		return j.TalkBase
	}
	ext := filepath.Ext(j.SummaryPath)
	return j.SummaryPath[:len(j.SummaryPath)-len(ext)]
}

// HealthCheck reports whether the stage has what it needs to run.
func (s *Stage) HealthCheck(ctx context.Context) stage.Health {
	if s.store == nil {
		return stage.Unhealthy(stageName, "artifact store unavailable")
	}
	if s.llm == nil {
		return stage.Unhealthy(stageName, "llm client unavailable")
	}
	if hc, ok := s.llm.(healthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return stage.Unhealthy(stageName, fmt.Sprintf("llm: %v", err))
		}
	}
	return stage.Healthy(stageName)
}
