package config

import (
	"fmt"

	"github.com/ogs-notify/ogs-notify/internal/models"
)

// SettingsPath returns the explicit path if set, otherwise the default config.yaml.
func SettingsPath(explicit string) (string, error) {
	if explicit != "" {
		return expandPath(explicit)
	}
	return DefaultSettingsFile()
}

// LoadSettings loads the settings from path. An explicit path that doesn't
// exist is an error; a missing default config.yaml yields default settings.
func LoadSettings(explicit string) (*models.Settings, error) {
	path, err := SettingsPath(explicit)
	if err != nil {
		return nil, err
	}
	if explicit != "" && !FileExists(path) {
		return nil, fmt.Errorf("config file %s does not exist", path)
	}

	settings, err := LoadOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return settings, nil
}
