package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/regform/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Endpoint   string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "regform", "config.yaml")
}

// DefaultLogFile returns the log file the terminal form writes to.
// On macOS: ~/Library/Logs/regform/regform.log
// On Linux: $XDG_STATE_HOME/regform/regform.log (defaults to ~/.local/state/regform/regform.log)
func DefaultLogFile() string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "regform", "regform.log")
	}

	home, _ := os.UserHomeDir()
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "regform", "regform.log")
	}
	return filepath.Join(home, ".local", "state", "regform", "regform.log")
}
