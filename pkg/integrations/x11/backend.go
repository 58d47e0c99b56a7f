// Package x11 implements window listing and control for X11 sessions on
// top of the EWMH client list published by the window manager.
package x11

import (
	"log"

	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/estruyf/FrameFit/pkg/integrations/process"
	"github.com/estruyf/FrameFit/pkg/window"
)

// Backend implements window.Backend for X11. Every call opens its own
// connection so no server state outlives a request.
type Backend struct {
	// processName resolves _NET_WM_PID to the owning process name
	processName func(pid int) (string, error)
}

var _ window.Backend = (*Backend)(nil)

// NewBackend creates a new X11 backend
func NewBackend() *Backend {
	return &Backend{processName: process.Name}
}

// HasWindowAccess reports whether an X server connection can be opened
func (b *Backend) HasWindowAccess() bool {
	c, err := connect()
	if err != nil {
		return false
	}
	c.close()
	return true
}

// Windows returns the viewable managed windows, topmost first
func (b *Backend) Windows() ([]window.Window, error) {
	c, err := connect()
	if err != nil {
		return nil, errors.WithMessage(window.ErrEnumerationFailed, err.Error())
	}
	defer c.close()

	stack, err := c.clientWindows()
	if err != nil {
		return nil, errors.WithMessage(window.ErrEnumerationFailed, err.Error())
	}

	windows := make([]window.Window, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		win := stack[i]
		if !c.isViewable(win) {
			continue
		}
		windows = append(windows, b.describe(c, win))
	}
	return windows, nil
}

func (b *Backend) describe(c *connection, win xproto.Window) window.Window {
	x, y, width, height := c.geometry(win)

	return window.Window{
		ID:      uint32(win),
		Title:   c.windowName(win),
		AppName: b.ownerName(c, win),
		Bounds:  window.Bounds{X: x, Y: y, Width: width, Height: height},
	}
}

// ownerName prefers the owning process name and falls back to the WM_CLASS
// class for clients that do not publish a pid (remote or sandboxed apps)
func (b *Backend) ownerName(c *connection, win xproto.Window) string {
	if pid := c.windowPID(win); pid > 0 && b.processName != nil {
		if name, err := b.processName(pid); err == nil && name != "" {
			return name
		}
	}
	return c.windowClass(win)
}

// MainDisplaySize returns the size of the default screen
func (b *Backend) MainDisplaySize() (window.Size, bool) {
	c, err := connect()
	if err != nil {
		return window.Size{}, false
	}
	defer c.close()

	return window.Size{
		Width:  int(c.screen.WidthInPixels),
		Height: int(c.screen.HeightInPixels),
	}, true
}

// Apply activates the window and asks the window manager to move/resize it
func (b *Backend) Apply(plan window.ResizePlan) error {
	c, err := connect()
	if err != nil {
		return err
	}
	defer c.close()

	win := xproto.Window(plan.Window.ID)
	if err := c.activate(win); err != nil {
		log.Printf("x11: failed to activate window %d: %v", plan.Window.ID, err)
	}

	mask, values := configureValues(plan)
	if err := c.configure(win, mask, values); err != nil {
		return errors.Wrapf(err, "failed to configure window %d (%s)", plan.Window.ID, plan.Window.AppName)
	}
	return nil
}

// configureValues builds the ConfigureWindow mask and value list. Values
// must follow mask bit order: x, y, width, height.
func configureValues(plan window.ResizePlan) (uint16, []uint32) {
	if !plan.Center {
		return xproto.ConfigWindowWidth | xproto.ConfigWindowHeight,
			[]uint32{uint32(plan.Width), uint32(plan.Height)}
	}

	pos := window.CenterPosition(plan.Screen, plan.Width, plan.Height)
	return xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(pos.X)), uint32(int32(pos.Y)), uint32(plan.Width), uint32(plan.Height)}
}

// IsAvailable checks if an X server is reachable
func (b *Backend) IsAvailable() bool {
	return b.HasWindowAccess()
}

// GetDisplayServer returns "x11"
func (b *Backend) GetDisplayServer() string {
	return "x11"
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}
