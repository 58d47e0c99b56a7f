// Package process resolves process names for window owners and for the
// running application itself.
package process

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ps "github.com/shirou/gopsutil/v3/process"
)

// Name returns the executable name of pid
func Name(pid int) (string, error) {
	if pid <= 0 {
		return "", errors.Errorf("invalid pid %d", pid)
	}

	p, err := ps.NewProcess(int32(pid))
	if err != nil {
		return "", errors.Wrapf(err, "failed to find process %d", pid)
	}

	name, err := p.Name()
	if err != nil {
		return "", errors.Wrapf(err, "failed to read name of process %d", pid)
	}
	return strings.TrimSpace(name), nil
}

// SelfName returns the name of the running process, falling back to the
// executable's base name when the process table cannot be read
func SelfName() string {
	if name, err := Name(os.Getpid()); err == nil && name != "" {
		return name
	}

	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
}
