package media

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const (
	// FFmpegCommand is used when no binary is configured.
	FFmpegCommand = "ffmpeg"

	defaultAudioBitrate    = "320k"
	defaultAudioSampleRate = 44100
)

// Tool cuts clips and extracts audio. Both operations write to dst, which the
// caller owns; a failed call may leave a partial file behind.
type Tool interface {
	Trim(ctx context.Context, src string, start, end int, dst string) error
	ExtractAudio(ctx context.Context, src, dst string) error
}

// CommandRunner executes name with args and returns an error describing any failure.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Options configures the ffmpeg invocation.
type Options struct {
	Binary          string
	AudioBitrate    string
	AudioSampleRate int
}

// FFmpeg implements Tool by shelling out to ffmpeg.
type FFmpeg struct {
	binary        string
	bitrate       string
	sampleRate    int
	commandRunner CommandRunner
}

// NewFFmpeg returns an ffmpeg-backed Tool.
func NewFFmpeg(opts Options) *FFmpeg {
	f := &FFmpeg{
		binary:     strings.TrimSpace(opts.Binary),
		bitrate:    strings.TrimSpace(opts.AudioBitrate),
		sampleRate: opts.AudioSampleRate,
	}
	if f.binary == "" {
		f.binary = FFmpegCommand
	}
	if f.bitrate == "" {
		f.bitrate = defaultAudioBitrate
	}
	if f.sampleRate <= 0 {
		f.sampleRate = defaultAudioSampleRate
	}
	return f
}

// WithCommandRunner sets a custom command runner (for testing).
func (f *FFmpeg) WithCommandRunner(runner CommandRunner) *FFmpeg {
	f.commandRunner = runner
	return f
}

// Binary returns the ffmpeg command in use.
func (f *FFmpeg) Binary() string {
	return f.binary
}

// Trim copies the [start, end] second range of src into dst without re-encoding.
func (f *FFmpeg) Trim(ctx context.Context, src string, start, end int, dst string) error {
	if start < 0 || end <= start {
		return fmt.Errorf("trim: invalid range %d..%d", start, end)
	}
	return f.run(ctx, buildTrimArgs(src, start, end, dst)...)
}

// ExtractAudio drops the video stream of src and encodes its audio as MP3 into dst.
func (f *FFmpeg) ExtractAudio(ctx context.Context, src, dst string) error {
	return f.run(ctx, buildAudioArgs(src, f.bitrate, f.sampleRate, dst)...)
}

func buildTrimArgs(src string, start, end int, dst string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", src,
		"-ss", strconv.Itoa(start),
		"-to", strconv.Itoa(end),
		"-c", "copy",
		dst,
	}
}

func buildAudioArgs(src, bitrate string, sampleRate int, dst string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-i", src,
		"-vn",
		"-ab", bitrate,
		"-ar", strconv.Itoa(sampleRate),
		dst,
	}
}

func (f *FFmpeg) run(ctx context.Context, args ...string) error {
	if f.commandRunner != nil {
		return f.commandRunner(ctx, f.binary, args...)
	}
	cmd := exec.CommandContext(ctx, f.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", f.binary, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s exited with status %d: %s", f.binary, exitErr.ExitCode(), strings.TrimSpace(string(output)))
	}
	return fmt.Errorf("%s: %w: %s", f.binary, err, strings.TrimSpace(string(output)))
}
