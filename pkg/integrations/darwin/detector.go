// Package darwin drives macOS windows through CoreGraphics and AppleScript.
// The CoreGraphics calls need cgo; without it the package builds with a
// native layer that reports everything as unsupported.
package darwin

import (
	"github.com/pkg/errors"

	"github.com/estruyf/FrameFit/pkg/window"
)

// native is the foreign-memory boundary: everything that touches
// CoreFoundation handles lives behind it.
type native interface {
	available() bool
	hasEventSession() bool
	windowEntries() ([]windowEntry, error)
	mainDisplaySize() (window.Size, bool)
}

// Backend implements window.Backend for macOS
type Backend struct {
	native native
	runner Runner
}

var _ window.Backend = (*Backend)(nil)

// NewBackend creates a macOS backend that runs scripts through runner
func NewBackend(runner Runner) *Backend {
	if runner == nil {
		runner = NewOSAScript(DefaultInterpreter)
	}
	return &Backend{native: platformNative(), runner: runner}
}

// HasWindowAccess uses the ability to create a session event as a proxy for
// the accessibility grant, which macOS does not expose directly
func (b *Backend) HasWindowAccess() bool {
	return b.native.hasEventSession()
}

// Windows decodes the on-screen window list, front to back
func (b *Backend) Windows() ([]window.Window, error) {
	if !b.native.available() {
		return nil, window.ErrNotSupported
	}

	entries, err := b.native.windowEntries()
	if err != nil {
		return nil, err
	}

	windows := make([]window.Window, 0, len(entries))
	for _, e := range entries {
		windows = append(windows, decodeEntry(e))
	}
	return windows, nil
}

// MainDisplaySize returns the main display bounds
func (b *Backend) MainDisplaySize() (window.Size, bool) {
	return b.native.mainDisplaySize()
}

// Apply builds the resize script for plan and runs it
func (b *Backend) Apply(plan window.ResizePlan) error {
	if !b.native.available() {
		return window.ErrNotSupported
	}

	script := BuildResizeScript(plan)
	if err := b.runner.Run(script); err != nil {
		return errors.WithMessagef(err, "resize %q", plan.Window.AppName)
	}
	return nil
}

// IsAvailable checks if CoreGraphics is reachable in this build
func (b *Backend) IsAvailable() bool {
	return b.native.available()
}

// GetDisplayServer returns "quartz"
func (b *Backend) GetDisplayServer() string {
	return "quartz"
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}
