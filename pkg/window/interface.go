package window

// Bounds is a window rectangle in screen coordinates with a top-left origin
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Window represents one on-screen window as reported by the window server.
// Values are rebuilt on every enumeration and must not be cached: the ID is
// only valid until the next window change on the OS side.
type Window struct {
	ID      uint32 `json:"id"`
	Title   string `json:"title"`
	AppName string `json:"app_name"` // owning application, also the automation target
	Bounds  Bounds `json:"bounds"`
}

// ResizeRequest identifies a window by ID and carries the requested size.
// Width and Height are passed through to the backend unvalidated.
type ResizeRequest struct {
	WindowID uint32 `json:"window_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Size is a pixel extent
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Point is a screen position
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ResizePlan is everything a backend needs to carry out one resize.
type ResizePlan struct {
	Window Window
	Width  int
	Height int
	Center bool
	// Screen is only meaningful when Center is set.
	Screen Size
}

// Backend is the interface that all platform window integrations must satisfy
type Backend interface {
	// HasWindowAccess reports whether the process may observe and control
	// other applications' windows. It never fails.
	HasWindowAccess() bool

	// Windows returns the decoded on-screen windows front to back, unfiltered
	Windows() ([]Window, error)

	// MainDisplaySize returns the pixel size of the main display; ok is false
	// when the platform cannot report it
	MainDisplaySize() (size Size, ok bool)

	// Apply resizes (and optionally centers) the window described by plan
	Apply(plan ResizePlan) error

	// IsAvailable checks if this backend can run on the current system
	IsAvailable() bool

	// GetDisplayServer returns the backend name ("quartz", "x11", "unsupported")
	GetDisplayServer() string

	// Close cleans up any resources used by the backend
	Close() error
}
