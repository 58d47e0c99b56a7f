package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/estruyf/FrameFit/internal/mcp"
)

func runMCP() int {
	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	s := newSession(loadConfig(), true)
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := mcp.NewServer(s.commands, s.backend.GetDisplayServer())
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("MCP server error: %v", err)
		return 1
	}
	return 0
}
