//go:build !darwin && !linux

package detector

import (
	"runtime"

	"github.com/estruyf/FrameFit/pkg/integrations/unsupported"
	"github.com/estruyf/FrameFit/pkg/window"
)

func newPlatformBackend(Options) window.Backend {
	return unsupported.NewBackend(runtime.GOOS)
}
