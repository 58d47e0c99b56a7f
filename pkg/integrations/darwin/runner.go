package darwin

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/estruyf/FrameFit/pkg/window"
)

// DefaultInterpreter is the command-line AppleScript interpreter
const DefaultInterpreter = "osascript"

// Runner executes one automation script
type Runner interface {
	Run(script string) error
}

// OSAScript runs scripts through the osascript binary, one script per call.
// It blocks until the interpreter exits; there is no timeout.
type OSAScript struct {
	Path string
}

// NewOSAScript creates a runner for the interpreter at path
func NewOSAScript(path string) *OSAScript {
	if path == "" {
		path = DefaultInterpreter
	}
	return &OSAScript{Path: path}
}

// Run executes script with `-e`. A process that could not be started yields
// a *window.SpawnError, a non-zero exit a *window.ScriptError with stderr.
func (o *OSAScript) Run(script string) error {
	var stderr bytes.Buffer
	cmd := exec.Command(o.Path, "-e", script)
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &window.ScriptError{Stderr: strings.TrimSpace(stderr.String())}
	}
	return &window.SpawnError{Err: err}
}
