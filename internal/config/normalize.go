package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAWS()
	c.normalizeLLM()
	c.normalizeMedia()
	c.normalizeLogging()
	if c.Download.ProgressIntervalMillis == 0 {
		c.Download.ProgressIntervalMillis = defaultProgressInterval
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.YouTubeDir) == "" {
		c.Paths.YouTubeDir = defaultYouTubeDir
	}
	if strings.TrimSpace(c.Paths.TalksDir) == "" {
		c.Paths.TalksDir = defaultTalksDir
	}
	if c.Paths.YouTubeDir, err = expandPath(strings.TrimSpace(c.Paths.YouTubeDir)); err != nil {
		return fmt.Errorf("paths.youtube_dir: %w", err)
	}
	if c.Paths.TalksDir, err = expandPath(strings.TrimSpace(c.Paths.TalksDir)); err != nil {
		return fmt.Errorf("paths.talks_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAWS() {
	c.AWS.Region = strings.TrimSpace(c.AWS.Region)
	if c.AWS.Region == "" {
		if value, ok := os.LookupEnv("AWS_REGION"); ok {
			c.AWS.Region = strings.TrimSpace(value)
		}
	}
	c.AWS.Bucket = strings.TrimSpace(c.AWS.Bucket)
	if c.AWS.Bucket == "" {
		if value, ok := os.LookupEnv("AWS_S3_BUCKET"); ok {
			c.AWS.Bucket = strings.TrimSpace(value)
		}
	}
	c.AWS.AccessKeyID = strings.TrimSpace(c.AWS.AccessKeyID)
	c.AWS.SecretAccessKey = strings.TrimSpace(c.AWS.SecretAccessKey)
	c.AWS.AudioPrefix = strings.TrimLeft(strings.TrimSpace(c.AWS.AudioPrefix), "/")
	if c.AWS.AudioPrefix != "" && !strings.HasSuffix(c.AWS.AudioPrefix, "/") {
		c.AWS.AudioPrefix += "/"
	}
	c.AWS.LanguageCode = strings.TrimSpace(c.AWS.LanguageCode)
	if c.AWS.LanguageCode == "" {
		c.AWS.LanguageCode = defaultLanguageCode
	}
	if c.AWS.PollIntervalSeconds == 0 {
		c.AWS.PollIntervalSeconds = defaultPollInterval
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("ANTHROPIC_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = defaultLLMMaxTokens
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
}

func (c *Config) normalizeMedia() {
	c.Media.FFmpegBinary = strings.TrimSpace(c.Media.FFmpegBinary)
	if c.Media.FFmpegBinary == "" {
		c.Media.FFmpegBinary = defaultFFmpegBinary
	}
	c.Media.AudioBitrate = strings.ToLower(strings.TrimSpace(c.Media.AudioBitrate))
	if c.Media.AudioBitrate == "" {
		c.Media.AudioBitrate = defaultAudioBitrate
	}
	if c.Media.AudioSampleRate == 0 {
		c.Media.AudioSampleRate = defaultAudioSampleRate
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
