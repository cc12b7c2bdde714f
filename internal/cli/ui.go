package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/osvaldoandrade/shellcommander/internal/platform"
)

const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiDim     = "\x1b[2m"
	ansiRed     = "\x1b[38;5;196m"
	ansiGreen   = "\x1b[38;5;82m"
	ansiYellow  = "\x1b[38;5;214m"
	ansiMagenta = "\x1b[38;5;201m"
	ansiCyan    = "\x1b[38;5;51m"
)

type renderer struct {
	color bool
}

func newRenderer(out io.Writer, asJSON bool) renderer {
	return renderer{color: colorEnabled(out, asJSON)}
}

func colorEnabled(out io.Writer, asJSON bool) bool {
	if asJSON {
		return false
	}
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	return platform.IsTerminal(out)
}

func spinnerEnabled(out io.Writer, asJSON bool) bool {
	return colorEnabled(out, asJSON)
}

func (r renderer) wrap(code, value string) string {
	if !r.color || value == "" {
		return value
	}
	return code + value + ansiReset
}

func (r renderer) key(value string) string {
	return r.wrap(ansiBold+ansiCyan, value)
}

func (r renderer) ok(value string) string {
	return r.wrap(ansiBold+ansiGreen, value)
}

func (r renderer) warn(value string) string {
	return r.wrap(ansiBold+ansiYellow, value)
}

func (r renderer) err(value string) string {
	return r.wrap(ansiBold+ansiRed, value)
}

func (r renderer) accent(value string) string {
	return r.wrap(ansiBold+ansiMagenta, value)
}

func (r renderer) dim(value string) string {
	return r.wrap(ansiDim, value)
}

// statusCode colours a porcelain code: staged side green, worktree side red.
func (r renderer) statusCode(code string) string {
	if !r.color || len(code) != 2 {
		return code
	}
	switch code {
	case "??":
		return r.err(code)
	case "!!":
		return r.dim(code)
	}
	return r.ok(code[:1]) + r.err(code[1:])
}

// when renders t relative to now, with the absolute time dimmed beside it.
func (r renderer) when(t time.Time, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now") + " " + r.dim("("+t.Format(timeLayout)+")")
}

func withSpinner(ctx context.Context, out io.Writer, enabled bool, label string, fn func() error) error {
	if !enabled {
		return fn()
	}
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	frames := []string{"|", "/", "-", "\\"}
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()

	frame := 0
	cancelled := ctx.Done()
	for {
		select {
		case err := <-done:
			clearLine(out)
			return err
		case <-ticker.C:
			fmt.Fprintf(out, "\r%s %s", frames[frame%len(frames)], label)
			frame++
		case <-cancelled:
			// fn observes ctx itself; wait for it so the line is cleared once.
			cancelled = nil
		}
	}
}

func clearLine(out io.Writer) {
	fmt.Fprint(out, "\r\x1b[2K")
}
