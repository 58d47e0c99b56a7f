package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/estruyf/FrameFit/internal/config"
	"github.com/estruyf/FrameFit/internal/daemon"
	"github.com/estruyf/FrameFit/internal/reporter"
	"github.com/estruyf/FrameFit/internal/web"
	"github.com/estruyf/FrameFit/pkg/utils"
)

const (
	daemonChildEnv = "FRAMEFIT_DAEMON_CHILD"

	// statusErrorLimit caps the failures listed by "status"
	statusErrorLimit = 3
)

func serveDaemon(args []string) {
	fs := newFlagSet("serve", "serve [--foreground] [--port N]", "Start the web API server.")
	foreground := fs.Bool("foreground", false, "Run in the foreground instead of daemonizing")
	port := fs.Int("port", 0, "Override the configured web port")
	if code, ok := parseFlags(fs, args); !ok {
		os.Exit(code)
	}

	cfg := loadConfig()
	if *port != 0 {
		if err := cfg.SetWebPort(*port); err != nil {
			log.Fatalf("Invalid port: %v", err)
		}
	}

	// Check if already running
	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if running {
		log.Fatalf("Server is already running (PID: %d)", pid)
	}

	if *foreground || os.Getenv(daemonChildEnv) == "1" {
		runServer(cfg, dm, !*foreground)
		return
	}

	daemonize(cfg)
}

func runServer(cfg *config.Config, dm *daemon.Daemon, detached bool) {
	if detached {
		logFile, err := os.OpenFile(cfg.Daemon.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			log.SetOutput(logFile)
			defer logFile.Close()
		}
	}

	s := newSession(cfg, true)
	defer s.Close()

	log.Printf("Window backend initialized: %s (available: %v)", s.backend.GetDisplayServer(), s.backend.IsAvailable())

	if err := dm.WritePID(); err != nil {
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.RemovePID()

	webServer := web.NewServer(cfg, s.commands, s.repo, 0)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := webServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	log.Println("Starting framefit web API...")
	log.Printf("Web API available at: http://%s", webServer.GetAddress())
	log.Printf("Configuration:\n%s", cfg.String())

	select {
	case <-sigChan:
		log.Println("Received shutdown signal")
	case err := <-errChan:
		log.Printf("Web server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down web server: %v", err)
	}

	log.Println("Server stopped successfully")
}

func daemonize(cfg *config.Config) {
	env := append(os.Environ(), daemonChildEnv+"=1")

	executable, err := os.Executable()
	if err != nil {
		executable = os.Args[0]
	}

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil}, // stdin, stdout, stderr to /dev/null
		Sys:   detachedProcAttr(),
	}

	process, err := os.StartProcess(executable, os.Args, procAttr)
	if err != nil {
		log.Fatalf("Failed to start server process: %v", err)
	}

	fmt.Printf("Server started successfully (PID: %d)\n", process.Pid)
	fmt.Printf("Web API available at: http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	fmt.Printf("Logs: %s\n", cfg.Daemon.LogFile)
}

func stopDaemon() {
	cfg := loadConfig()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check server status: %v", err)
	}

	if !running {
		fmt.Println("Server is not running")
		return
	}

	fmt.Printf("Stopping server (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop server: %v", err)
	}

	fmt.Println("Server stopped successfully")
}

func showStatus() {
	cfg := loadConfig()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check server status: %v", err)
	}

	if !running {
		fmt.Println("Server: Not running")
	} else {
		fmt.Printf("Server: Running (PID: %d)\n", pid)
		fmt.Printf("Web API: http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	}

	s := newSession(cfg, true)
	defer s.Close()

	fmt.Printf("\nWindow Backend:\n")
	fmt.Printf("  Display: %s\n", s.backend.GetDisplayServer())
	fmt.Printf("  Access:  %v\n", s.commands.CheckPermissions())

	if win, err := s.commands.GetFrontmostWindow(); err == nil {
		fmt.Printf("\nFrontmost Window:\n")
		fmt.Printf("  App:   %s\n", win.AppName)
		fmt.Printf("  Title: %s\n", win.Title)
	}

	if s.repo == nil {
		return
	}
	now := time.Now()
	if latest, err := s.repo.GetLatest(); err == nil && latest != nil {
		result := "ok"
		if !latest.Success {
			result = "failed: " + latest.ErrorMsg
		}
		fmt.Printf("\nLast Resize (%s):\n", utils.FormatAgo(latest.Timestamp, now))
		fmt.Printf("  App:    %s\n", latest.AppName)
		fmt.Printf("  Size:   %s (centered: %v)\n", utils.FormatSize(latest.Width, latest.Height), latest.Centered)
		fmt.Printf("  Result: %s\n", result)
	}

	logs, err := reporter.New(s.repo).RecentErrors(statusErrorLimit)
	if err != nil || len(logs) == 0 {
		return
	}
	fmt.Printf("\nRecent Errors:\n")
	for _, l := range logs {
		fmt.Printf("  %-12s %-24s %s\n", utils.FormatAgo(l.Timestamp, now), l.Operation, reporter.Truncate(l.ErrorMsg, 60))
	}
}
