// Package mcp exposes FrameFit's window commands as Model Context Protocol
// tools over stdio.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/estruyf/FrameFit/internal/commands"
	"github.com/estruyf/FrameFit/pkg/version"
)

const ServerName = "framefit"

// Server is the MCP server for window control.
type Server struct {
	mcpServer *mcpsdk.Server
	commands  *commands.Commands
	display   string
}

// NewServer creates the MCP server. display names the active window backend.
func NewServer(cmds *commands.Commands, display string) *Server {
	s := &Server{
		commands: cmds,
		display:  display,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "check_permissions",
		Description: "Report whether FrameFit is allowed to observe and control application windows. On macOS this requires the Accessibility permission.",
	}, s.handleCheckPermissions)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_windows",
		Description: "List on-screen application windows, frontmost first. System windows, FrameFit's own windows and windows of 50 pixels or less in either dimension are omitted.",
	}, s.handleGetWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_frontmost_window",
		Description: "Return the window that resize_frontmost_window would act on.",
	}, s.handleGetFrontmostWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_frontmost_window",
		Description: "Resize the frontmost application window, optionally centering it on the main display.",
	}, s.handleResizeFrontmost)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_specific_window",
		Description: "Resize the window with the given id from get_windows, optionally centering it on the main display. The window list is re-read before resizing.",
	}, s.handleResizeSpecific)
}
