package darwin

import (
	"github.com/estruyf/FrameFit/pkg/window"
)

// nameBufferSize bounds the UTF-8 buffer used for window and owner names.
// Longer names come back truncated.
const nameBufferSize = 256

// Window server dictionary keys for the bounds sub-dictionary
const (
	boundsX      = "X"
	boundsY      = "Y"
	boundsWidth  = "Width"
	boundsHeight = "Height"
)

// windowEntry holds the fields copied out of one kCGWindowList dictionary.
// A nil pointer or missing bounds key means the field was absent.
type windowEntry struct {
	Number *int32
	Name   *string
	Owner  *string
	Bounds map[string]float64
}

// decodeEntry turns an entry into a Window, defaulting absent fields to zero
// values. Bounds are truncated toward zero.
func decodeEntry(e windowEntry) window.Window {
	var w window.Window

	if e.Number != nil {
		w.ID = uint32(*e.Number)
	}
	if e.Name != nil {
		w.Title = *e.Name
	}
	if e.Owner != nil {
		w.AppName = *e.Owner
	}

	w.Bounds = window.Bounds{
		X:      int(e.Bounds[boundsX]),
		Y:      int(e.Bounds[boundsY]),
		Width:  int(e.Bounds[boundsWidth]),
		Height: int(e.Bounds[boundsHeight]),
	}

	return w
}

// cString converts a NUL-terminated buffer, stopping at the first NUL
func cString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
