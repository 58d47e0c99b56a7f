// Package resizer lists, looks up and resizes windows through a platform
// backend, applying FrameFit's filtering and self-protection rules.
package resizer

import (
	"log"

	"github.com/pkg/errors"

	"github.com/estruyf/FrameFit/internal/config"
	"github.com/estruyf/FrameFit/pkg/window"
)

type Service struct {
	config  *config.Config
	backend window.Backend
	filter  window.Filter
}

func NewService(cfg *config.Config, backend window.Backend) *Service {
	return &Service{
		config:  cfg,
		backend: backend,
		filter:  cfg.Filter(),
	}
}

// HasWindowAccess reports whether window control is currently permitted
func (s *Service) HasWindowAccess() bool {
	return s.backend.HasWindowAccess()
}

// DisplayServer names the backend in use
func (s *Service) DisplayServer() string {
	return s.backend.GetDisplayServer()
}

// ListWindows returns the user-facing windows, frontmost first. Windows are
// read fresh from the backend on every call.
func (s *Service) ListWindows() ([]window.Window, error) {
	windows, err := s.backend.Windows()
	if err != nil {
		return nil, err
	}
	return s.filter.Apply(windows), nil
}

// FrontmostWindow returns the topmost listed window not owned by FrameFit
// or a system process
func (s *Service) FrontmostWindow() (window.Window, error) {
	windows, err := s.ListWindows()
	if err != nil {
		return window.Window{}, err
	}
	return window.Frontmost(windows, s.frontmostExclusions())
}

func (s *Service) frontmostExclusions() []string {
	return append([]string{s.config.App.SelfName}, s.config.App.SystemOwners...)
}

// ResizeWindow resizes win and optionally centers it on the main display
func (s *Service) ResizeWindow(win window.Window, width, height int, center bool) error {
	if !s.backend.IsAvailable() {
		return window.ErrNotSupported
	}

	if win.AppName == s.config.App.SelfName {
		return window.ErrSelfResizeForbidden
	}

	plan := window.ResizePlan{
		Window: win,
		Width:  width,
		Height: height,
		Center: center,
	}

	if center {
		screen, ok := s.backend.MainDisplaySize()
		if !ok {
			screen = s.config.App.FallbackScreen
			log.Printf("Warning: could not read main display size, assuming %dx%d", screen.Width, screen.Height)
		}
		plan.Screen = screen
	}

	return s.backend.Apply(plan)
}

// ResizeWindowByID looks the window up in a fresh listing and resizes it.
// The window is returned when it was found.
func (s *Service) ResizeWindowByID(req window.ResizeRequest, center bool) (window.Window, error) {
	windows, err := s.ListWindows()
	if err != nil {
		return window.Window{}, err
	}

	win, ok := window.Find(windows, req.WindowID)
	if !ok {
		return window.Window{ID: req.WindowID}, errors.WithMessagef(window.ErrWindowNotFound, "window %d", req.WindowID)
	}

	return win, s.ResizeWindow(win, req.Width, req.Height, center)
}

// ResizeFrontmostWindow resizes the current frontmost window and returns it
func (s *Service) ResizeFrontmostWindow(width, height int, center bool) (window.Window, error) {
	win, err := s.FrontmostWindow()
	if err != nil {
		return window.Window{}, err
	}
	return win, s.ResizeWindow(win, width, height, center)
}
