package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validate ensures the configuration is usable. Credentials are deliberately
// not required here; missing ones surface when the external service is called.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAWS(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Download.ProgressIntervalMillis < 0 {
		return errors.New("download.progress_interval_ms must be >= 0")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.YouTubeDir == c.Paths.TalksDir {
		return errors.New("paths.youtube_dir and paths.talks_dir must differ")
	}
	return nil
}

func (c *Config) validateAWS() error {
	if c.AWS.PollIntervalSeconds < 0 {
		return errors.New("aws.poll_interval_seconds must be positive")
	}
	if (c.AWS.AccessKeyID == "") != (c.AWS.SecretAccessKey == "") {
		return errors.New("aws.access_key_id and aws.secret_access_key must be set together")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.MaxTokens < 0 {
		return errors.New("llm.max_tokens must be positive")
	}
	if c.LLM.TimeoutSeconds < 0 {
		return errors.New("llm.timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateMedia() error {
	if c.Media.AudioSampleRate < 0 {
		return errors.New("media.audio_sample_rate must be positive")
	}
	bitrate := strings.TrimSuffix(c.Media.AudioBitrate, "k")
	if value, err := strconv.Atoi(bitrate); err != nil || value <= 0 {
		return fmt.Errorf("media.audio_bitrate %q must look like 320k", c.Media.AudioBitrate)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging rotation limits must be >= 0")
	}
	return nil
}
