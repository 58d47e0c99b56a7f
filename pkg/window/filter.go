package window

import (
	"strings"
)

const (
	// WindowServerName is the owner of desktop and menu bar surfaces
	WindowServerName = "Window Server"
	// DockName is the owner of the dock/taskbar surfaces
	DockName = "Dock"

	// MinWindowSize is the exclusive lower bound on listed window dimensions
	MinWindowSize = 50
)

// SystemOwners returns the owners that are never user application windows
func SystemOwners() []string {
	return []string{WindowServerName, DockName}
}

// Filter decides which decoded windows are listed
type Filter struct {
	// Excluded owner names, compared case-insensitively
	Excluded []string
	MinSize  int
}

// NewFilter builds the listing filter for the given self name
func NewFilter(selfName string, minSize int, systemOwners ...string) Filter {
	if len(systemOwners) == 0 {
		systemOwners = SystemOwners()
	}
	excluded := append([]string{}, systemOwners...)
	if selfName != "" {
		excluded = append(excluded, selfName)
	}
	return Filter{Excluded: excluded, MinSize: minSize}
}

// Allows reports whether w belongs in an enumeration result
func (f Filter) Allows(w Window) bool {
	if w.Bounds.Width <= f.MinSize || w.Bounds.Height <= f.MinSize {
		return false
	}
	for _, name := range f.Excluded {
		if strings.EqualFold(name, w.AppName) {
			return false
		}
	}
	return true
}

// Apply keeps the allowed windows in their original order
func (f Filter) Apply(windows []Window) []Window {
	result := make([]Window, 0, len(windows))
	for _, w := range windows {
		if f.Allows(w) {
			result = append(result, w)
		}
	}
	return result
}

// Frontmost returns the first window whose owner is not in excluded. The
// comparison is case-sensitive. Windows must be ordered front to back.
func Frontmost(windows []Window, excluded []string) (Window, error) {
	for _, w := range windows {
		if !containsExact(excluded, w.AppName) {
			return w, nil
		}
	}
	return Window{}, ErrNoEligibleWindow
}

func containsExact(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Find returns the window with the given id
func Find(windows []Window, id uint32) (Window, bool) {
	for _, w := range windows {
		if w.ID == id {
			return w, true
		}
	}
	return Window{}, false
}
