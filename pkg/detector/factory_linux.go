//go:build linux

package detector

import (
	"log"
	"os"

	"github.com/estruyf/FrameFit/pkg/integrations/unsupported"
	"github.com/estruyf/FrameFit/pkg/integrations/x11"
	"github.com/estruyf/FrameFit/pkg/window"
)

func newPlatformBackend(Options) window.Backend {
	switch DetectDisplayServer() {
	case "x11":
		return x11.NewBackend()
	case "wayland":
		// Wayland has no client-side window list; XWayland still exposes
		// the X11 clients when DISPLAY is set.
		if os.Getenv("DISPLAY") != "" {
			log.Printf("Wayland session detected, using XWayland for window control")
			return x11.NewBackend()
		}
		return unsupported.NewBackend("wayland")
	default:
		return unsupported.NewBackend("no display server")
	}
}
