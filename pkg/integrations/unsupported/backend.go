// Package unsupported is the backend for platforms without a window
// integration: every query fails with window.ErrNotSupported.
package unsupported

import (
	"github.com/estruyf/FrameFit/pkg/window"
)

// Backend implements window.Backend by refusing everything
type Backend struct {
	reason string
}

var _ window.Backend = (*Backend)(nil)

// NewBackend creates the backend; reason is reported by GetDisplayServer
func NewBackend(reason string) *Backend {
	return &Backend{reason: reason}
}

func (b *Backend) HasWindowAccess() bool {
	return false
}

func (b *Backend) Windows() ([]window.Window, error) {
	return nil, window.ErrNotSupported
}

func (b *Backend) MainDisplaySize() (window.Size, bool) {
	return window.Size{}, false
}

func (b *Backend) Apply(window.ResizePlan) error {
	return window.ErrNotSupported
}

func (b *Backend) IsAvailable() bool {
	return false
}

func (b *Backend) GetDisplayServer() string {
	if b.reason == "" {
		return "unsupported"
	}
	return "unsupported (" + b.reason + ")"
}

func (b *Backend) Close() error {
	return nil
}
