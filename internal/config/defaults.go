package config

const (
	defaultConfigPath       = "~/.config/talkclip/config.toml"
	defaultYouTubeDir       = "__youtube"
	defaultTalksDir         = "__talks"
	defaultLogDir           = "~/.local/share/talkclip/logs"
	defaultStateDir         = "~/.local/share/talkclip"
	defaultAudioPrefix      = "audio/"
	defaultLanguageCode     = "en-US"
	defaultPollInterval     = 5
	defaultLLMModel         = "claude-3-opus-20240229"
	defaultLLMMaxTokens     = 1024
	defaultLLMTimeout       = 300
	defaultFFmpegBinary     = "ffmpeg"
	defaultAudioBitrate     = "320k"
	defaultAudioSampleRate  = 44100
	defaultProgressInterval = 250
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogMaxSizeMB     = 10
	defaultLogMaxBackups    = 3
	defaultLogMaxAgeDays    = 28
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			YouTubeDir: defaultYouTubeDir,
			TalksDir:   defaultTalksDir,
			LogDir:     defaultLogDir,
			StateDir:   defaultStateDir,
		},
		AWS: AWS{
			AudioPrefix:         defaultAudioPrefix,
			LanguageCode:        defaultLanguageCode,
			PollIntervalSeconds: defaultPollInterval,
		},
		LLM: LLM{
			Model:          defaultLLMModel,
			MaxTokens:      defaultLLMMaxTokens,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Media: Media{
			FFmpegBinary:    defaultFFmpegBinary,
			AudioBitrate:    defaultAudioBitrate,
			AudioSampleRate: defaultAudioSampleRate,
		},
		Download: Download{
			ProgressIntervalMillis: defaultProgressInterval,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
			Compress:   true,
		},
		History: History{
			Enabled: true,
		},
	}
}
