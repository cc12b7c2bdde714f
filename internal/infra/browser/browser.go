package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Commander builds the command that opens a URL.
type Commander func(ctx context.Context, name string, args ...string) *exec.Cmd

// Opener starts the desktop browser without waiting for it to exit.
type Opener struct {
	goos    string
	command Commander
}

func New() *Opener {
	return &Opener{goos: runtime.GOOS, command: exec.CommandContext}
}

func NewWithCommander(goos string, command Commander) *Opener {
	return &Opener{goos: goos, command: command}
}

func (o *Opener) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name, args := openCommand(o.goos, url)
	// #nosec G204 -- the URL is passed as a single argument
	cmd := o.command(context.WithoutCancel(ctx), name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
