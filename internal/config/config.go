package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/estruyf/FrameFit/pkg/window"
)

// Config holds all application configuration
type Config struct {
	// App configuration
	App AppConfig `yaml:"app"`

	// Automation configuration
	Automation AutomationConfig `yaml:"automation"`

	// Database configuration
	Database DatabaseConfig `yaml:"database"`

	// Daemon configuration
	Daemon DaemonConfig `yaml:"daemon"`

	// Web server configuration
	Web WebConfig `yaml:"web"`
}

// AppConfig holds window filtering behavior
type AppConfig struct {
	SelfName       string      `yaml:"self_name"`       // Own process name, never listed or resized
	SystemOwners   []string    `yaml:"system_owners"`   // Owners hidden from listings and frontmost lookup
	MinWindowSize  int         `yaml:"min_window_size"` // Windows must be strictly larger on both axes
	FallbackScreen window.Size `yaml:"fallback_screen"` // Used when the main display size is unknown
}

// AutomationConfig holds script execution configuration
type AutomationConfig struct {
	OSAScriptPath string `yaml:"osascript_path"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database file
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string `yaml:"pid_file"` // Path to PID file for daemon management
	LogFile string `yaml:"log_file"`
}

// WebConfig holds web server configuration
type WebConfig struct {
	Host string `yaml:"host"` // Host to bind web server to
	Port int    `yaml:"port"` // Port for web server

	// AllowedOrigins lists browser origins granted CORS access. Empty means
	// cross-origin requests are refused.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		App: AppConfig{
			SelfName:       "framefit",
			SystemOwners:   window.SystemOwners(),
			MinWindowSize:  window.MinWindowSize,
			FallbackScreen: window.FallbackScreen,
		},
		Automation: AutomationConfig{
			OSAScriptPath: "osascript",
		},
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/framefit/framefit.db
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/framefit-%d.pid", os.Getuid()),
			LogFile: fmt.Sprintf("/tmp/framefit-%d.log", os.Getuid()),
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 10000 + os.Getuid()%50000,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.App.SelfName) == "" {
		return fmt.Errorf("self name cannot be empty")
	}

	if c.App.MinWindowSize < 0 {
		return fmt.Errorf("minimum window size cannot be negative, got %d", c.App.MinWindowSize)
	}

	if c.App.FallbackScreen.Width <= 0 || c.App.FallbackScreen.Height <= 0 {
		return fmt.Errorf("fallback screen must be positive, got %dx%d",
			c.App.FallbackScreen.Width, c.App.FallbackScreen.Height)
	}

	if c.Automation.OSAScriptPath == "" {
		return fmt.Errorf("osascript path cannot be empty")
	}

	// Validate web config
	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	// Validate daemon config
	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetWebPort sets the web server port with validation
func (c *Config) SetWebPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	c.Web.Port = port
	return nil
}

// Filter returns the enumeration filter for this configuration
func (c *Config) Filter() window.Filter {
	return window.NewFilter(c.App.SelfName, c.App.MinWindowSize, c.App.SystemOwners...)
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  App:
    Self Name: %s
    System Owners: %s
    Min Window Size: %d
    Fallback Screen: %dx%d
  Automation:
    osascript: %s
  Database:
    Path: %s
  Daemon:
    PID File: %s
    Log File: %s
  Web:
    Host: %s
    Port: %d
    Allowed Origins: %s`,
		c.App.SelfName,
		strings.Join(c.App.SystemOwners, ", "),
		c.App.MinWindowSize,
		c.App.FallbackScreen.Width,
		c.App.FallbackScreen.Height,
		c.Automation.OSAScriptPath,
		c.Database.Path,
		c.Daemon.PIDFile,
		c.Daemon.LogFile,
		c.Web.Host,
		c.Web.Port,
		strings.Join(c.Web.AllowedOrigins, ", "),
	)
}
