//go:build darwin

package detector

import (
	"github.com/estruyf/FrameFit/pkg/integrations/darwin"
	"github.com/estruyf/FrameFit/pkg/window"
)

func newPlatformBackend(opts Options) window.Backend {
	return darwin.NewBackend(darwin.NewOSAScript(opts.Interpreter))
}
