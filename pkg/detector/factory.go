package detector

import (
	"os"

	"github.com/estruyf/FrameFit/pkg/window"
)

// Options tune the backend chosen by New
type Options struct {
	// Interpreter is the AppleScript interpreter used on macOS
	Interpreter string
}

// New returns the window backend for the current platform. It never fails:
// platforms without an integration get a backend that reports
// window.ErrNotSupported.
func New(opts Options) window.Backend {
	return newPlatformBackend(opts)
}

func DetectDisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
