// Package paths resolves the portal configuration and data directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-user directory name under the platform roots.
const appDirName = "portal"

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PORTAL_CONFIG_DIR"
	EnvDataDir   = "PORTAL_DATA_DIR"
)

// platformDir holds platform lookups that tests override.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/portal (fallback ~/.config/portal)
// macOS:   ~/Library/Application Support/portal
// Windows: %APPDATA%/portal
func DefaultConfigDir() (string, error) {
	return platformPath("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform default data directory, where the
// simulator keeps its JSONL files.
//
// Linux:   $XDG_DATA_HOME/portal (fallback ~/.local/share/portal)
// macOS:   ~/Library/Application Support/portal/data
// Windows: %APPDATA%/portal/data
func DefaultDataDir() (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformPath("", "")
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "data"), nil
	}
	return platformPath("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// platformPath resolves appDirName under $xdgEnv or ~/homeRel on Linux and
// under os.UserConfigDir elsewhere.
func platformPath(xdgEnv, homeRel string) (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv(xdgEnv); xdgEnv != "" && xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, homeRel, appDirName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// ResolveConfigDir applies flag > PORTAL_CONFIG_DIR > DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies flag > config file value > PORTAL_DATA_DIR >
// DefaultDataDir.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}
