package commands

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/estruyf/FrameFit/internal/config"
	"github.com/estruyf/FrameFit/internal/models"
	"github.com/estruyf/FrameFit/internal/resizer"
	"github.com/estruyf/FrameFit/pkg/window"
)

type stubBackend struct {
	windows  []window.Window
	access   bool
	applied  int
	applyErr error
}

func (b *stubBackend) HasWindowAccess() bool { return b.access }
func (b *stubBackend) Windows() ([]window.Window, error) { return b.windows, nil }
func (b *stubBackend) MainDisplaySize() (window.Size, bool) { return window.Size{}, false }
func (b *stubBackend) IsAvailable() bool { return true }
func (b *stubBackend) GetDisplayServer() string { return "stub" }
func (b *stubBackend) Close() error { return nil }

func (b *stubBackend) Apply(window.ResizePlan) error {
	b.applied++
	return b.applyErr
}

type memoryJournal struct {
	events    []*models.ResizeEvent
	errorLogs []*models.ErrorLog
	err       error
}

func (j *memoryJournal) Create(event *models.ResizeEvent) error {
	j.events = append(j.events, event)
	return j.err
}

func (j *memoryJournal) CreateErrorLog(errorLog *models.ErrorLog) error {
	j.errorLogs = append(j.errorLogs, errorLog)
	return j.err
}

func newCommands(b *stubBackend, j Journal) *Commands {
	return New(resizer.NewService(config.Default(), b), j)
}

var sampleWindows = []window.Window{
	{ID: 1, AppName: "Dock", Bounds: window.Bounds{Width: 1920, Height: 70}},
	{ID: 2, AppName: "Safari", Title: "Apple", Bounds: window.Bounds{Width: 1200, Height: 800}},
	{ID: 3, AppName: "Notes", Title: "Groceries", Bounds: window.Bounds{Width: 600, Height: 400}},
}

func TestCheckPermissions(t *testing.T) {
	if newCommands(&stubBackend{}, nil).CheckPermissions() {
		t.Error("CheckPermissions() = true without access")
	}
	if !newCommands(&stubBackend{access: true}, nil).CheckPermissions() {
		t.Error("CheckPermissions() = false with access")
	}
}

func TestGetWindows(t *testing.T) {
	windows, err := newCommands(&stubBackend{windows: sampleWindows}, nil).GetWindows()
	if err != nil {
		t.Fatalf("GetWindows() error: %v", err)
	}
	if len(windows) != 2 || windows[0].AppName != "Safari" || windows[1].AppName != "Notes" {
		t.Errorf("GetWindows() = %+v", windows)
	}
}

func TestResizeFrontmostWindowRecordsEvent(t *testing.T) {
	b := &stubBackend{windows: sampleWindows}
	j := &memoryJournal{}

	if err := newCommands(b, j).ResizeFrontmostWindow(1280, 720, true); err != nil {
		t.Fatalf("ResizeFrontmostWindow() error: %v", err)
	}
	if b.applied != 1 {
		t.Errorf("Apply called %d times, want 1", b.applied)
	}
	if len(j.events) != 1 {
		t.Fatalf("journal has %d events, want 1", len(j.events))
	}
	e := j.events[0]
	if e.AppName != "Safari" || e.WindowID != 2 || e.WindowTitle != "Apple" || e.Width != 1280 || !e.Centered || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.DisplayServer != "stub" {
		t.Errorf("DisplayServer = %q", e.DisplayServer)
	}
	if len(j.errorLogs) != 0 {
		t.Errorf("successful resize wrote %d error logs", len(j.errorLogs))
	}
}

func TestResizeSpecificWindowNotFound(t *testing.T) {
	b := &stubBackend{windows: sampleWindows}
	j := &memoryJournal{}

	err := newCommands(b, j).ResizeSpecificWindow(99, 800, 600, false)
	if !errors.Is(err, window.ErrWindowNotFound) {
		t.Fatalf("ResizeSpecificWindow() error = %v, want ErrWindowNotFound", err)
	}
	if b.applied != 0 {
		t.Error("unknown window reached the backend")
	}
	if len(j.events) != 1 || j.events[0].Success || j.events[0].WindowID != 99 {
		t.Errorf("events = %+v", j.events)
	}
	if len(j.errorLogs) != 1 || j.errorLogs[0].Operation != OpResizeSpecific {
		t.Errorf("errorLogs = %+v", j.errorLogs)
	}
}

func TestResizeSpecificWindowScriptFailure(t *testing.T) {
	b := &stubBackend{windows: sampleWindows, applyErr: &window.ScriptError{Stderr: "No windows found"}}
	j := &memoryJournal{}

	err := newCommands(b, j).ResizeSpecificWindow(3, 800, 600, false)
	if !errors.Is(err, window.ErrScriptFailed) {
		t.Fatalf("ResizeSpecificWindow() error = %v, want ErrScriptFailed", err)
	}
	if len(j.errorLogs) != 1 || j.errorLogs[0].AppName != "Notes" {
		t.Errorf("errorLogs = %+v", j.errorLogs)
	}
}

func TestJournalFailureDoesNotFailCommand(t *testing.T) {
	b := &stubBackend{windows: sampleWindows}
	j := &memoryJournal{err: errors.New("disk full")}

	if err := newCommands(b, j).ResizeSpecificWindow(2, 800, 600, false); err != nil {
		t.Errorf("ResizeSpecificWindow() error = %v, want nil despite journal failure", err)
	}
}

func TestNilJournal(t *testing.T) {
	b := &stubBackend{windows: sampleWindows}
	if err := newCommands(b, nil).ResizeFrontmostWindow(800, 600, false); err != nil {
		t.Errorf("ResizeFrontmostWindow() error: %v", err)
	}
}
