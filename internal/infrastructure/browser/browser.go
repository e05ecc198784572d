// Package browser opens URLs in the default system browser.
package browser

import (
	"os/exec"
	"runtime"
)

// Opener launches a URL via the platform's URL handler.
type Opener struct {
	// Exec overrides command execution (for testing).
	Exec func(name string, args ...string) error
	// GOOS overrides the platform (for testing).
	GOOS string
}

func (o Opener) Open(url string) error {
	execFn := o.Exec
	if execFn == nil {
		execFn = startCommand
	}
	goos := o.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin":
		return execFn("open", url)
	case "windows":
		return execFn("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return execFn("xdg-open", url)
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}
