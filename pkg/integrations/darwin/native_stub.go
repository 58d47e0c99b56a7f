//go:build !darwin || !cgo

package darwin

import (
	"github.com/estruyf/FrameFit/pkg/window"
)

// stub stands in for CoreGraphics on other platforms and on cgo-less builds
type stub struct{}

func platformNative() native {
	return stub{}
}

func (stub) available() bool {
	return false
}

func (stub) hasEventSession() bool {
	return false
}

func (stub) windowEntries() ([]windowEntry, error) {
	return nil, window.ErrNotSupported
}

func (stub) mainDisplaySize() (window.Size, bool) {
	return window.Size{}, false
}
