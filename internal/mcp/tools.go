package mcp

import (
	"context"
	"log"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleCheckPermissions(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, CheckPermissionsOutput, error) {
	return nil, CheckPermissionsOutput{
		HasWindowAccess: s.commands.CheckPermissions(),
		DisplayServer:   s.display,
	}, nil
}

func (s *Server) handleGetWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, GetWindowsOutput, error) {
	windows, err := s.commands.GetWindows()
	if err != nil {
		return nil, GetWindowsOutput{}, err
	}
	return nil, GetWindowsOutput{Windows: windows}, nil
}

func (s *Server) handleGetFrontmostWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, GetFrontmostWindowOutput, error) {
	win, err := s.commands.GetFrontmostWindow()
	if err != nil {
		return nil, GetFrontmostWindowOutput{}, err
	}
	return nil, GetFrontmostWindowOutput{Window: win}, nil
}

func (s *Server) handleResizeFrontmost(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeFrontmostInput) (*mcpsdk.CallToolResult, ResizeOutput, error) {
	if err := s.commands.ResizeFrontmostWindow(args.Width, args.Height, args.Center); err != nil {
		log.Printf("mcp: resize_frontmost_window failed: %v", err)
		return nil, ResizeOutput{}, err
	}
	return nil, ResizeOutput{Resized: true, Width: args.Width, Height: args.Height, Center: args.Center}, nil
}

func (s *Server) handleResizeSpecific(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeSpecificInput) (*mcpsdk.CallToolResult, ResizeOutput, error) {
	if err := s.commands.ResizeSpecificWindow(args.WindowID, args.Width, args.Height, args.Center); err != nil {
		log.Printf("mcp: resize_specific_window %d failed: %v", args.WindowID, err)
		return nil, ResizeOutput{}, err
	}
	return nil, ResizeOutput{Resized: true, Width: args.Width, Height: args.Height, Center: args.Center}, nil
}
