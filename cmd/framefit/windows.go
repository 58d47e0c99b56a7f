package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/estruyf/FrameFit/internal/reporter"
	"github.com/estruyf/FrameFit/pkg/utils"
	"github.com/estruyf/FrameFit/pkg/window"
)

func newFlagSet(name, usage, description string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: framefit "+usage)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, description)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags returns an exit code and false when the command should stop
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func printJSON(v interface{}) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to format JSON: %v\n", err)
		return 1
	}
	fmt.Println(string(data))
	return 0
}

func runPermissions(args []string) int {
	fs := newFlagSet("permissions", "permissions", "Check whether window control is permitted.")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	s := newSession(loadConfig(), false)
	defer s.Close()

	if s.commands.CheckPermissions() {
		fmt.Printf("Window access: granted (%s)\n", s.backend.GetDisplayServer())
		return 0
	}

	fmt.Printf("Window access: denied (%s)\n", s.backend.GetDisplayServer())
	fmt.Println("On macOS, allow framefit under System Settings > Privacy & Security > Accessibility.")
	return 1
}

func runList(args []string) int {
	fs := newFlagSet("list", "list [--json]", "List application windows, frontmost first.")
	jsonOut := fs.Bool("json", false, "Output windows as JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	s := newSession(loadConfig(), false)
	defer s.Close()

	windows, err := s.commands.GetWindows()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *jsonOut || !stdoutIsTerminal() {
		return printJSON(windows)
	}

	if len(windows) == 0 {
		fmt.Println("No windows found.")
		return 0
	}

	fmt.Printf("%-10s %-24s %-36s %12s %10s\n", "ID", "Application", "Title", "Position", "Size")
	for _, w := range windows {
		fmt.Printf("%-10d %-24s %-36s %12s %10s\n",
			w.ID,
			reporter.Truncate(w.AppName, 24),
			reporter.Truncate(w.Title, 36),
			fmt.Sprintf("%d,%d", w.Bounds.X, w.Bounds.Y),
			utils.FormatSize(w.Bounds.Width, w.Bounds.Height))
	}
	return 0
}

func runFrontmost(args []string) int {
	fs := newFlagSet("frontmost", "frontmost [--json]", "Show the window a frontmost resize would target.")
	jsonOut := fs.Bool("json", false, "Output the window as JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	s := newSession(loadConfig(), false)
	defer s.Close()

	win, err := s.commands.GetFrontmostWindow()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *jsonOut || !stdoutIsTerminal() {
		return printJSON(win)
	}

	fmt.Printf("Frontmost Window:\n")
	fmt.Printf("  ID:    %d\n", win.ID)
	fmt.Printf("  App:   %s\n", win.AppName)
	fmt.Printf("  Title: %s\n", win.Title)
	fmt.Printf("  Frame: %d,%d %s\n", win.Bounds.X, win.Bounds.Y, utils.FormatSize(win.Bounds.Width, win.Bounds.Height))
	return 0
}

// windowIDFlag holds a --id value. Values outside the 32-bit window id range
// are rejected.
type windowIDFlag struct {
	id  uint32
	set bool
}

func (f *windowIDFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.FormatUint(uint64(f.id), 10)
}

func (f *windowIDFlag) Set(s string) error {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return errors.Errorf("invalid window id %q", s)
	}
	f.id = uint32(v)
	f.set = true
	return nil
}

type resizeArgs struct {
	windowID windowIDFlag
	width    int
	height   int
	center   bool
}

// parseResizeArgs returns an exit code and false when the command should stop
func parseResizeArgs(args []string) (resizeArgs, int, bool) {
	var ra resizeArgs

	fs := newFlagSet("resize", "resize [--id N] [--center] WIDTH HEIGHT",
		"Resize the frontmost window, or the listed window with the given id.")
	fs.Var(&ra.windowID, "id", "Window id from 'framefit list' (default: frontmost window)")
	fs.BoolVar(&ra.center, "center", false, "Center the window on the main display")
	if code, ok := parseFlags(fs, args); !ok {
		return ra, code, false
	}

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "resize needs WIDTH and HEIGHT")
		fs.Usage()
		return ra, 2, false
	}
	var err error
	if ra.width, err = strconv.Atoi(fs.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid width %q\n", fs.Arg(0))
		return ra, 2, false
	}
	if ra.height, err = strconv.Atoi(fs.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid height %q\n", fs.Arg(1))
		return ra, 2, false
	}
	return ra, 0, true
}

func runResize(args []string) int {
	ra, code, ok := parseResizeArgs(args)
	if !ok {
		return code
	}

	s := newSession(loadConfig(), true)
	defer s.Close()

	var err error
	if ra.windowID.set {
		err = s.commands.ResizeSpecificWindow(ra.windowID.id, ra.width, ra.height, ra.center)
	} else {
		err = s.commands.ResizeFrontmostWindow(ra.width, ra.height, ra.center)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	fmt.Printf("Resized to %s\n", utils.FormatSize(ra.width, ra.height))
	return 0
}

// exitCodeFor distinguishes "nothing to do" outcomes from real failures
func exitCodeFor(err error) int {
	if errors.Is(err, window.ErrWindowNotFound) || errors.Is(err, window.ErrNoEligibleWindow) {
		return 3
	}
	return 1
}
