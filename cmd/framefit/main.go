package main

import (
	"fmt"
	"log"
	"os"

	"github.com/estruyf/FrameFit/internal/commands"
	"github.com/estruyf/FrameFit/internal/config"
	"github.com/estruyf/FrameFit/internal/database"
	"github.com/estruyf/FrameFit/internal/resizer"
	"github.com/estruyf/FrameFit/pkg/detector"
	"github.com/estruyf/FrameFit/pkg/version"
	"github.com/estruyf/FrameFit/pkg/window"
)

const appName = "framefit"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "permissions":
		os.Exit(runPermissions(args))
	case "list":
		os.Exit(runList(args))
	case "frontmost":
		os.Exit(runFrontmost(args))
	case "resize":
		os.Exit(runResize(args))
	case "serve":
		serveDaemon(args)
	case "stop":
		stopDaemon()
	case "status":
		showStatus()
	case "history":
		os.Exit(runHistory(args))
	case "clear":
		os.Exit(runClear(args))
	case "mcp":
		os.Exit(runMCP())
	case "version":
		fmt.Printf("%s version %s\n", appName, version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`framefit - Resize and center application windows

Usage:
  framefit <command> [options]

Commands:
  permissions                          Check whether window control is permitted
  list [--json]                        List application windows, frontmost first
  frontmost [--json]                   Show the window a frontmost resize would target
  resize [--id N] [--center] W H       Resize the frontmost window, or window N
  serve [--foreground] [--port N]      Start the web API server in the background
  stop                                 Stop the web API server
  status                               Show server status, last resize and recent errors
  history [day|week|month] [--events] [--json]
                                       Show resize history per application or per resize
  clear [--yes]                        Clear the resize history
  mcp                                  Serve the window tools over MCP (stdio)
  version                              Show version information
  help                                 Show this help message

Examples:
  framefit list
  framefit resize 1280 720
  framefit resize --center 1440 900
  framefit resize --id 4711 800 600
  framefit history week
  framefit history --events

Environment Variables:
  FRAMEFIT_CONFIG            Config file (default ~/.config/framefit/config.yaml)
  FRAMEFIT_SELF_NAME         Own application name, never listed or resized
  FRAMEFIT_SYSTEM_OWNERS     Comma separated owners hidden from listings
  FRAMEFIT_MIN_WINDOW_SIZE   Windows must be larger than this on both axes
  FRAMEFIT_OSASCRIPT         AppleScript interpreter (macOS)
  FRAMEFIT_DB_PATH           Resize history database path
  FRAMEFIT_PID_FILE          PID file path
  FRAMEFIT_LOG_FILE          Server log file path
  FRAMEFIT_WEB_HOST          Web API host
  FRAMEFIT_WEB_PORT          Web API port
  FRAMEFIT_WEB_ALLOWED_ORIGINS
                             Comma separated browser origins allowed to call the API

Version: %s
`, version.Version)
}

func loadConfig() *config.Config {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func newBackend(cfg *config.Config) window.Backend {
	return detector.New(detector.Options{Interpreter: cfg.Automation.OSAScriptPath})
}

// openJournal opens the resize history. A broken journal never blocks
// window commands, so failures only produce a warning and a nil DB.
func openJournal(cfg *config.Config) (*database.DB, *database.Repository) {
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Printf("Warning: resize history unavailable: %v", err)
		return nil, nil
	}

	if err := db.Initialize(); err != nil {
		log.Printf("Warning: resize history unavailable: %v", err)
		db.Close()
		return nil, nil
	}

	return db, database.NewRepository(db)
}

// session bundles everything a window command needs
type session struct {
	cfg      *config.Config
	backend  window.Backend
	db       *database.DB
	repo     *database.Repository
	commands *commands.Commands
}

func newSession(cfg *config.Config, withJournal bool) *session {
	s := &session{cfg: cfg, backend: newBackend(cfg)}

	var journal commands.Journal
	if withJournal {
		s.db, s.repo = openJournal(cfg)
		if s.repo != nil {
			journal = s.repo
		}
	}

	s.commands = commands.New(resizer.NewService(cfg, s.backend), journal)
	return s
}

func (s *session) Close() {
	if s.db != nil {
		s.db.Close()
	}
	s.backend.Close()
}
