package window

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotSupported is returned on platforms without a window integration
	ErrNotSupported = errors.New("not supported on this platform")

	// ErrEnumerationFailed means the window server returned no list at all,
	// as opposed to an empty one
	ErrEnumerationFailed = errors.New("failed to get window list")

	ErrNoEligibleWindow    = errors.New("no suitable window found, please open another application")
	ErrWindowNotFound      = errors.New("window not found")
	ErrSelfResizeForbidden = errors.New("cannot resize the application's own window")

	ErrScriptSpawnFailed = errors.New("failed to execute automation script")
	ErrScriptFailed      = errors.New("automation script error")
)

// ScriptError is returned when the automation interpreter exits non-zero
type ScriptError struct {
	Stderr string
}

func (e *ScriptError) Error() string {
	return ErrScriptFailed.Error() + ": " + e.Stderr
}

// Is lets errors.Is(err, ErrScriptFailed) match
func (e *ScriptError) Is(target error) bool {
	return target == ErrScriptFailed
}

// SpawnError is returned when the automation interpreter could not be started
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return ErrScriptSpawnFailed.Error() + ": " + e.Err.Error()
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

func (e *SpawnError) Is(target error) bool {
	return target == ErrScriptSpawnFailed
}
