// Package commands is the boundary between FrameFit's front ends (CLI, web
// API, MCP) and the window engine. Every resize is recorded in the journal.
package commands

import (
	"log"
	"time"

	"github.com/estruyf/FrameFit/internal/models"
	"github.com/estruyf/FrameFit/internal/resizer"
	"github.com/estruyf/FrameFit/pkg/window"
)

// Operation names used in the journal
const (
	OpResizeFrontmost = "resize_frontmost_window"
	OpResizeSpecific  = "resize_specific_window"
)

// Journal records resize attempts. *database.Repository implements it.
type Journal interface {
	Create(event *models.ResizeEvent) error
	CreateErrorLog(errorLog *models.ErrorLog) error
}

type Commands struct {
	service *resizer.Service
	journal Journal
}

// New creates the command set. journal may be nil.
func New(service *resizer.Service, journal Journal) *Commands {
	return &Commands{service: service, journal: journal}
}

// CheckPermissions reports whether FrameFit may observe and control windows
func (c *Commands) CheckPermissions() bool {
	return c.service.HasWindowAccess()
}

// GetWindows lists the user-facing windows, frontmost first
func (c *Commands) GetWindows() ([]window.Window, error) {
	return c.service.ListWindows()
}

// GetFrontmostWindow returns the window a frontmost resize would target
func (c *Commands) GetFrontmostWindow() (window.Window, error) {
	return c.service.FrontmostWindow()
}

// ResizeFrontmostWindow resizes the frontmost user window
func (c *Commands) ResizeFrontmostWindow(width, height int, center bool) error {
	win, err := c.service.ResizeFrontmostWindow(width, height, center)
	c.record(OpResizeFrontmost, win, width, height, center, err)
	return err
}

// ResizeSpecificWindow resizes the listed window with the given id
func (c *Commands) ResizeSpecificWindow(windowID uint32, width, height int, center bool) error {
	req := window.ResizeRequest{WindowID: windowID, Width: width, Height: height}
	win, err := c.service.ResizeWindowByID(req, center)
	c.record(OpResizeSpecific, win, width, height, center, err)
	return err
}

// record writes the attempt to the journal. Journal failures are logged
// and never change the result of the command.
func (c *Commands) record(op string, win window.Window, width, height int, center bool, opErr error) {
	if c.journal == nil {
		return
	}

	now := time.Now()
	event := &models.ResizeEvent{
		Timestamp:     now,
		WindowID:      win.ID,
		AppName:       win.AppName,
		WindowTitle:   win.Title,
		Width:         width,
		Height:        height,
		Centered:      center,
		Success:       opErr == nil,
		DisplayServer: c.service.DisplayServer(),
	}
	if opErr != nil {
		event.ErrorMsg = opErr.Error()
	}

	if err := c.journal.Create(event); err != nil {
		log.Printf("Failed to record resize in journal: %v", err)
	}

	if opErr == nil {
		return
	}

	errorLog := &models.ErrorLog{
		Timestamp: now,
		Operation: op,
		AppName:   win.AppName,
		ErrorMsg:  opErr.Error(),
	}
	if err := c.journal.CreateErrorLog(errorLog); err != nil {
		log.Printf("Failed to store error in database: %v (original error: %v)", err, opErr)
	}
}
