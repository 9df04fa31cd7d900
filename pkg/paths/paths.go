package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/realmctl/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigFile points at the games config file directly
	EnvConfigFile = "REALMCTL_CONFIG"

	// EnvConfigDir overrides the XDG config directory for realmctl
	EnvConfigDir = "REALMCTL_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for realmctl
	EnvDataDir = "REALMCTL_DATA_DIR"

	// EnvStateDir overrides the XDG state directory for realmctl
	EnvStateDir = "REALMCTL_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under each XDG base dir
	AppDirName = "realmctl"

	// ConfigFileName is the name of the games config file
	ConfigFileName = "config.toml"

	// SettingsFileName is the name of the optional settings file
	SettingsFileName = "settings.toml"

	// WorkspacesDir is the default subdirectory for workspaces
	WorkspacesDir = "workspaces"

	// LogFileName is the name of the log file
	LogFileName = "realmctl.log"
)

// Paths provides centralized path management for realmctl
type Paths interface {
	ConfigDir() string
	ConfigFile() string
	SettingsFile() string
	DataDir() string
	StateDir() string
	WorkspaceRoot() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	configFile string
	xdgConfig  string
	xdgData    string
	xdgState   string
}

// New creates a new Paths instance. An explicit configFile wins over the
// REALMCTL_CONFIG environment variable, which wins over the XDG default.
func New(configFile string) (Paths, error) {
	// xdg caches the environment at init; tests and callers may have changed it
	xdg.Reload()

	p := &paths{}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = ExpandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = ExpandHome(stateDir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	switch {
	case configFile != "":
		p.configFile = ExpandHome(configFile)
	case os.Getenv(EnvConfigFile) != "":
		p.configFile = ExpandHome(os.Getenv(EnvConfigFile))
	default:
		p.configFile = filepath.Join(p.xdgConfig, ConfigFileName)
	}

	abs, err := filepath.Abs(p.configFile)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for config file")
	}
	p.configFile = abs

	return p, nil
}

// ExpandHome expands a leading ~ to the home directory.
// $HOME and other variables inside the path are not expanded.
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ConfigDir returns the XDG config directory for realmctl
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// ConfigFile returns the games config file path
func (p *paths) ConfigFile() string {
	return p.configFile
}

// SettingsFile returns the optional settings file path
func (p *paths) SettingsFile() string {
	return filepath.Join(p.xdgConfig, SettingsFileName)
}

// DataDir returns the XDG data directory for realmctl
func (p *paths) DataDir() string {
	return p.xdgData
}

// StateDir returns the XDG state directory for realmctl
func (p *paths) StateDir() string {
	return p.xdgState
}

// WorkspaceRoot returns the default directory workspaces are created in
func (p *paths) WorkspaceRoot() string {
	return filepath.Join(p.xdgData, WorkspacesDir)
}

// LogFilePath returns the log file path
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	return Normalize(path)
}

// Normalize expands home, makes the path absolute and cleans it
func Normalize(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}
