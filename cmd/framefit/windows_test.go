package main

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/estruyf/FrameFit/pkg/window"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.WithMessage(window.ErrWindowNotFound, "window 7"), 3},
		{window.ErrNoEligibleWindow, 3},
		{window.ErrSelfResizeForbidden, 1},
		{&window.ScriptError{Stderr: "boom"}, 1},
	}
	for _, tt := range tests {
		if got := exitCodeFor(tt.err); got != tt.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestParseFlagsHelp(t *testing.T) {
	fs := newFlagSet("list", "list [--json]", "List windows.")
	fs.Bool("json", false, "")

	if code, ok := parseFlags(fs, []string{"--help"}); ok || code != 0 {
		t.Errorf("parseFlags(--help) = %d, %v; want 0, false", code, ok)
	}

	fs = newFlagSet("list", "list [--json]", "List windows.")
	if code, ok := parseFlags(fs, []string{"--bogus"}); ok || code != 2 {
		t.Errorf("parseFlags(--bogus) = %d, %v; want 2, false", code, ok)
	}
}

func TestParseResizeArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantOK   bool
		wantCode int
		wantID   uint32
		wantSet  bool
	}{
		{"frontmost", []string{"800", "600"}, true, 0, 0, false},
		{"specific", []string{"--id", "4711", "--center", "800", "600"}, true, 0, 4711, true},
		{"largest id", []string{"--id", "4294967295", "800", "600"}, true, 0, 4294967295, true},
		{"id overflows 32 bits", []string{"--id", "4294967298", "800", "600"}, false, 2, 0, false},
		{"negative id", []string{"--id", "-1", "800", "600"}, false, 2, 0, false},
		{"missing height", []string{"800"}, false, 2, 0, false},
		{"bad width", []string{"wide", "600"}, false, 2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra, code, ok := parseResizeArgs(tt.args)
			if ok != tt.wantOK || code != tt.wantCode {
				t.Fatalf("parseResizeArgs(%v) = %d, %v; want %d, %v", tt.args, code, ok, tt.wantCode, tt.wantOK)
			}
			if !ok {
				return
			}
			if ra.windowID.set != tt.wantSet || ra.windowID.id != tt.wantID {
				t.Errorf("window id = %d (set %v), want %d (set %v)", ra.windowID.id, ra.windowID.set, tt.wantID, tt.wantSet)
			}
			if ra.width != 800 || ra.height != 600 {
				t.Errorf("size = %dx%d, want 800x600", ra.width, ra.height)
			}
		})
	}
}
