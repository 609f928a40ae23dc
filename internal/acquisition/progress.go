package acquisition

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/time/rate"
)

const (
	defaultProgressInterval = 250 * time.Millisecond
	bytesPerMB              = 1024 * 1024
)

// progressWriter counts bytes and reports cumulative megabytes. On a terminal
// each report overwrites the previous line; elsewhere it prints one line per
// whole megabyte reached so logs stay readable.
type progressWriter struct {
	mu       sync.Mutex
	out      io.Writer
	tty      bool
	limiter  *rate.Sometimes
	total    int64
	reported int64
	dirty    bool
}

func newProgressWriter(out io.Writer, interval time.Duration) *progressWriter {
	if interval <= 0 {
		interval = defaultProgressInterval
	}
	return &progressWriter{
		out:      out,
		tty:      isTerminal(out),
		limiter:  &rate.Sometimes{Interval: interval},
		reported: -1,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total += int64(len(b))
	p.dirty = true
	p.limiter.Do(p.reportLocked)
	return len(b), nil
}

// Finish prints the final total and ends a terminal progress line.
func (p *progressWriter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out == nil {
		return
	}
	if p.dirty {
		p.reportLocked()
	}
	if p.tty && p.reported >= 0 {
		fmt.Fprintln(p.out)
	}
}

func (p *progressWriter) reportLocked() {
	if p.out == nil {
		return
	}
	p.dirty = false
	mb := p.total / bytesPerMB
	if p.tty {
		fmt.Fprintf(p.out, "Download progress: %dMB\r", mb)
		p.reported = mb
		return
	}
	if mb == p.reported {
		return
	}
	fmt.Fprintf(p.out, "Download progress: %dMB\n", mb)
	p.reported = mb
}

// Total returns the bytes seen so far.
func (p *progressWriter) Total() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}
