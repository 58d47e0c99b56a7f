//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>

static int ff_has_event_session(void) {
	CGEventSourceRef src = CGEventSourceCreate(kCGEventSourceStateCombinedSessionState);
	if (src == NULL) {
		return 0;
	}
	CGEventRef ev = CGEventCreate(src);
	CFRelease(src);
	if (ev == NULL) {
		return 0;
	}
	CFRelease(ev);
	return 1;
}

static void ff_main_display_size(double *w, double *h) {
	CGRect b = CGDisplayBounds(CGMainDisplayID());
	*w = b.size.width;
	*h = b.size.height;
}

static CFArrayRef ff_copy_window_list(void) {
	return CGWindowListCopyWindowInfo(kCGWindowListOptionOnScreenOnly, kCGNullWindowID);
}

static CFIndex ff_count(CFArrayRef list) {
	return CFArrayGetCount(list);
}

static CFDictionaryRef ff_entry(CFArrayRef list, CFIndex i) {
	const void *v = CFArrayGetValueAtIndex(list, i);
	if (v == NULL || CFGetTypeID(v) != CFDictionaryGetTypeID()) {
		return NULL;
	}
	return (CFDictionaryRef)v;
}

static void ff_release(CFArrayRef list) {
	CFRelease(list);
}

static const void *ff_value(CFDictionaryRef d, CFStringRef key) {
	const void *v = NULL;
	if (d == NULL || !CFDictionaryGetValueIfPresent(d, key, &v)) {
		return NULL;
	}
	return v;
}

static int ff_number_int32(CFDictionaryRef d, CFStringRef key, int32_t *out) {
	const void *v = ff_value(d, key);
	if (v == NULL || CFGetTypeID(v) != CFNumberGetTypeID()) {
		return 0;
	}
	return CFNumberGetValue((CFNumberRef)v, kCFNumberSInt32Type, out) ? 1 : 0;
}

// Copies a UTF-8 rendering of the string into buf. If the whole string does
// not fit, as many complete characters as fit are copied instead.
static int ff_string(CFDictionaryRef d, CFStringRef key, char *buf, CFIndex size) {
	const void *v = ff_value(d, key);
	if (v == NULL || CFGetTypeID(v) != CFStringGetTypeID()) {
		return 0;
	}
	CFStringRef s = (CFStringRef)v;
	if (CFStringGetCString(s, buf, size, kCFStringEncodingUTF8)) {
		return 1;
	}
	CFIndex used = 0;
	CFStringGetBytes(s, CFRangeMake(0, CFStringGetLength(s)), kCFStringEncodingUTF8, 0, false,
		(UInt8 *)buf, size - 1, &used);
	buf[used] = 0;
	return 1;
}

// Bit i of the result is set when field i (X, Y, Width, Height) was present.
static int ff_bounds(CFDictionaryRef d, double out[4]) {
	const void *v = ff_value(d, kCGWindowBounds);
	if (v == NULL || CFGetTypeID(v) != CFDictionaryGetTypeID()) {
		return 0;
	}
	CFDictionaryRef b = (CFDictionaryRef)v;
	CFStringRef keys[4] = { CFSTR("X"), CFSTR("Y"), CFSTR("Width"), CFSTR("Height") };
	int mask = 0;
	for (int i = 0; i < 4; i++) {
		const void *n = ff_value(b, keys[i]);
		if (n != NULL && CFGetTypeID(n) == CFNumberGetTypeID() &&
			CFNumberGetValue((CFNumberRef)n, kCFNumberFloat64Type, &out[i])) {
			mask |= 1 << i;
		}
	}
	return mask;
}

static CFStringRef ff_key_number(void) { return kCGWindowNumber; }
static CFStringRef ff_key_name(void) { return kCGWindowName; }
static CFStringRef ff_key_owner(void) { return kCGWindowOwnerName; }
*/
import "C"

import (
	"unsafe"

	"github.com/estruyf/FrameFit/pkg/window"
)

type quartz struct{}

func platformNative() native {
	return quartz{}
}

func (quartz) available() bool {
	return true
}

func (quartz) hasEventSession() bool {
	return C.ff_has_event_session() == 1
}

func (quartz) mainDisplaySize() (window.Size, bool) {
	var w, h C.double
	C.ff_main_display_size(&w, &h)
	return window.Size{Width: int(w), Height: int(h)}, true
}

func (quartz) windowEntries() ([]windowEntry, error) {
	list := C.ff_copy_window_list()
	if list == 0 {
		return nil, window.ErrEnumerationFailed
	}
	defer C.ff_release(list)

	count := int(C.ff_count(list))
	entries := make([]windowEntry, 0, count)
	for i := 0; i < count; i++ {
		dict := C.ff_entry(list, C.CFIndex(i))
		entries = append(entries, readEntry(dict))
	}
	return entries, nil
}

var boundsKeys = [4]string{boundsX, boundsY, boundsWidth, boundsHeight}

// readEntry copies one dictionary into Go memory. A NULL dictionary yields
// an entry with every field absent.
func readEntry(dict C.CFDictionaryRef) windowEntry {
	var e windowEntry
	if dict == 0 {
		return e
	}

	var number C.int32_t
	if C.ff_number_int32(dict, C.ff_key_number(), &number) == 1 {
		n := int32(number)
		e.Number = &n
	}

	e.Name = readString(dict, C.ff_key_name())
	e.Owner = readString(dict, C.ff_key_owner())

	var raw [4]C.double
	mask := int(C.ff_bounds(dict, &raw[0]))
	if mask != 0 {
		e.Bounds = make(map[string]float64, 4)
		for i, key := range boundsKeys {
			if mask&(1<<i) != 0 {
				e.Bounds[key] = float64(raw[i])
			}
		}
	}

	return e
}

func readString(dict C.CFDictionaryRef, key C.CFStringRef) *string {
	var buf [nameBufferSize]byte
	if C.ff_string(dict, key, (*C.char)(unsafe.Pointer(&buf[0])), C.CFIndex(len(buf))) != 1 {
		return nil
	}
	s := cString(buf[:])
	return &s
}
