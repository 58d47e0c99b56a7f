package mcp

import "github.com/estruyf/FrameFit/pkg/window"

// EmptyInput is the input of tools without arguments.
type EmptyInput struct{}

// CheckPermissionsOutput is the output for the check_permissions tool.
type CheckPermissionsOutput struct {
	HasWindowAccess bool   `json:"has_window_access"`
	DisplayServer   string `json:"display_server"`
}

// GetWindowsOutput is the output for the get_windows tool.
type GetWindowsOutput struct {
	Windows []window.Window `json:"windows"`
}

// GetFrontmostWindowOutput is the output for the get_frontmost_window tool.
type GetFrontmostWindowOutput struct {
	Window window.Window `json:"window"`
}

// ResizeFrontmostInput is the input for the resize_frontmost_window tool.
type ResizeFrontmostInput struct {
	Width  int  `json:"width" jsonschema:"Target width in pixels"`
	Height int  `json:"height" jsonschema:"Target height in pixels"`
	Center bool `json:"center,omitempty" jsonschema:"Center the window on the main display after resizing"`
}

// ResizeSpecificInput is the input for the resize_specific_window tool.
type ResizeSpecificInput struct {
	WindowID uint32 `json:"window_id" jsonschema:"Window id as returned by get_windows"`
	Width    int    `json:"width" jsonschema:"Target width in pixels"`
	Height   int    `json:"height" jsonschema:"Target height in pixels"`
	Center   bool   `json:"center,omitempty" jsonschema:"Center the window on the main display after resizing"`
}

// ResizeOutput is the output of both resize tools.
type ResizeOutput struct {
	Resized bool `json:"resized"`
	Width   int  `json:"width"`
	Height  int  `json:"height"`
	Center  bool `json:"center"`
}
