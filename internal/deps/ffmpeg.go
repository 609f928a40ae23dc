package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const versionProbeTimeout = 10 * time.Second

// CheckFFmpeg resolves the ffmpeg binary and runs "<ffmpeg> -version" to make
// sure it actually executes. The first line of its output becomes Version.
func CheckFFmpeg(ctx context.Context, command string) Status {
	binary := strings.TrimSpace(command)
	if binary == "" {
		binary = "ffmpeg"
	}
	result := CheckBinaries(Requirements(binary))[0]
	if !result.Available {
		return result
	}
	resolved, err := exec.LookPath(binary)
	if err != nil {
		result.Available = false
		result.Detail = fmt.Sprintf("binary %q not found", binary)
		return result
	}
	result.Command = resolved
	result.Available = false

	probeCtx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()
	out, err := exec.CommandContext(probeCtx, resolved, "-version").CombinedOutput()
	if err != nil {
		result.Detail = fmt.Sprintf("%s -version failed: %v", resolved, err)
		return result
	}
	result.Available = true
	result.Version = firstLine(string(out))
	return result
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
