package config

import (
	"os"
	"strconv"
	"strings"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// App configuration
	if selfName := os.Getenv("FRAMEFIT_SELF_NAME"); selfName != "" {
		cfg.App.SelfName = selfName
	}

	if owners := splitList(os.Getenv("FRAMEFIT_SYSTEM_OWNERS")); len(owners) > 0 {
		cfg.App.SystemOwners = owners
	}

	if minSize := os.Getenv("FRAMEFIT_MIN_WINDOW_SIZE"); minSize != "" {
		if size, err := strconv.Atoi(minSize); err == nil && size >= 0 {
			cfg.App.MinWindowSize = size
		}
	}

	// Automation configuration
	if osascript := os.Getenv("FRAMEFIT_OSASCRIPT"); osascript != "" {
		cfg.Automation.OSAScriptPath = osascript
	}

	// Database configuration
	if dbPath := os.Getenv("FRAMEFIT_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Daemon configuration
	if pidFile := os.Getenv("FRAMEFIT_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	if logFile := os.Getenv("FRAMEFIT_LOG_FILE"); logFile != "" {
		cfg.Daemon.LogFile = logFile
	}

	// Web configuration
	if webHost := os.Getenv("FRAMEFIT_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("FRAMEFIT_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}

	if origins := splitList(os.Getenv("FRAMEFIT_WEB_ALLOWED_ORIGINS")); len(origins) > 0 {
		cfg.Web.AllowedOrigins = origins
	}
}

// splitList parses a comma separated value, dropping empty items
func splitList(value string) []string {
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// New creates a new Config from defaults, the config file and the environment.
// A missing config file is not an error.
func New() (*Config, error) {
	cfg := Default()

	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	if err := LoadFile(cfg, path); err != nil {
		return nil, err
	}

	LoadFromEnv(cfg)
	return cfg, nil
}
