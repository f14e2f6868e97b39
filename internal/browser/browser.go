// Package browser opens offer URLs in the user's web browser. Launches
// use exec.Command with explicit argument slices; offer URLs are never
// passed through a shell.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"whereto/internal/httputil"
)

// Launcher opens URLs with either a configured command or the platform
// default opener.
type Launcher struct {
	Command string // optional override, e.g. "firefox"
}

// command returns the opener binary for the current platform.
func (l *Launcher) command() string {
	if l.Command != "" {
		return l.Command
	}
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// Available checks that the opener binary exists in PATH.
func (l *Launcher) Available() bool {
	_, err := exec.LookPath(l.command())
	return err == nil
}

// Open launches the URL in a new browsing context.
func (l *Launcher) Open(url string) error {
	if err := httputil.ValidateURL(url); err != nil {
		return fmt.Errorf("refusing to open: %w", err)
	}

	name := l.command()
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("browser opener %q not found in PATH", name)
	}

	if err := exec.Command(name, url).Start(); err != nil {
		return fmt.Errorf("launching %s: %w", name, err)
	}
	return nil
}
