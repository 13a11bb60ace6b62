// Package config handles configuration loading, saving, and path management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ogs-notify/ogs-notify/internal/models"
)

// AppName is the per-application directory name under the platform data directory.
const AppName = "ogs-notify"

// IconsDirName is the name of the bundled icon directory within the data directory.
const IconsDirName = "icons"

// File names
const (
	SessionFileName  = "cookies.json"
	SettingsFileName = "config.yaml"
	InstanceFileName = "instance.yaml"

	IdleIconFileName     = "ogs_icon.png"
	AwaitingIconFileName = "ogs_icon_awaiting.png"
)

// DataDir returns the platform-specific data directory for ogs-notify.
//
//	Linux:   $XDG_DATA_HOME/ogs-notify or ~/.local/share/ogs-notify
//	macOS:   ~/Library/Application Support/ogs-notify
//	Windows: %APPDATA%\ogs-notify\data
func DataDir() (string, error) {
	return dataDir(runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func dataDir(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	switch goos {
	case "windows":
		appData := getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA is not set")
		}
		return filepath.Join(appData, AppName, "data"), nil
	case "darwin":
		h, err := home()
		if err != nil {
			return "", err
		}
		return filepath.Join(h, "Library", "Application Support", AppName), nil
	default:
		if xdg := getenv("XDG_DATA_HOME"); filepath.IsAbs(xdg) {
			return filepath.Join(xdg, AppName), nil
		}
		h, err := home()
		if err != nil {
			return "", err
		}
		return filepath.Join(h, ".local", "share", AppName), nil
	}
}

// DefaultSessionFile returns the path to the persisted cookie jar.
func DefaultSessionFile() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SessionFileName), nil
}

// DefaultSettingsFile returns the path to the config.yaml file.
func DefaultSettingsFile() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// InstanceFile returns the path to the instance.yaml file.
func InstanceFile() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, InstanceFileName), nil
}

// DefaultIconDir returns the path to the bundled icon directory.
func DefaultIconDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, IconsDirName), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	dir, err := DataDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// Paths holds the resolved locations the notifier reads and writes.
type Paths struct {
	SessionFile  string
	IdleIcon     string
	AwaitingIcon string
}

// ResolvePaths applies the overrides from the settings on top of the defaults.
func ResolvePaths(overrides models.PathsConfig) (Paths, error) {
	session, err := expandPath(overrides.SessionFile)
	if err != nil {
		return Paths{}, err
	}
	if session == "" {
		p, err := DefaultSessionFile()
		if err != nil {
			return Paths{}, err
		}
		session = p
	}

	iconDir, err := expandPath(overrides.IconDir)
	if err != nil {
		return Paths{}, err
	}
	if iconDir == "" {
		d, err := DefaultIconDir()
		if err != nil {
			return Paths{}, err
		}
		iconDir = d
	}

	return Paths{
		SessionFile:  session,
		IdleIcon:     filepath.Join(iconDir, IdleIconFileName),
		AwaitingIcon: filepath.Join(iconDir, AwaitingIconFileName),
	}, nil
}

// expandPath resolves a leading "~" and makes the path absolute. Empty stays empty.
func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
