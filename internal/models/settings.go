package models

import (
	"fmt"
	"time"
)

// Notification failure policies.
const (
	OnFailureLog   = "log"
	OnFailureAbort = "abort"
)

const (
	// DefaultPollInterval is the time between two poll cycles.
	DefaultPollInterval = 60 * time.Second

	// MinPollInterval keeps the poller from hammering the server.
	MinPollInterval = 10 * time.Second

	// DefaultSummary is the notification summary line.
	DefaultSummary = "ogs-notify"
)

// TrayConfig holds settings for the status icon.
type TrayConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// NotificationsConfig holds settings for desktop notifications.
type NotificationsConfig struct {
	OnFailure string `yaml:"on_failure" toml:"on_failure"` // "log" | "abort"
	Summary   string `yaml:"summary" toml:"summary"`
}

// PathsConfig overrides the default locations under the data directory.
// Empty values mean "use the default".
type PathsConfig struct {
	SessionFile string `yaml:"session_file" toml:"session_file"`
	IconDir     string `yaml:"icon_dir" toml:"icon_dir"`
}

// Settings represents the notifier configuration.
// This corresponds to <data dir>/config.yaml.
type Settings struct {
	Version       int                 `yaml:"version" toml:"version"`
	PollInterval  string              `yaml:"poll_interval" toml:"poll_interval"` // Go duration, e.g. "60s"
	Tray          TrayConfig          `yaml:"tray" toml:"tray"`
	Notifications NotificationsConfig `yaml:"notifications" toml:"notifications"`
	Paths         PathsConfig         `yaml:"paths" toml:"paths"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:      1,
		PollInterval: DefaultPollInterval.String(),
		Tray: TrayConfig{
			Enabled: true,
		},
		Notifications: NotificationsConfig{
			OnFailure: OnFailureLog,
			Summary:   DefaultSummary,
		},
	}
}

// Interval returns the parsed poll interval, falling back to the default when unset.
func (s *Settings) Interval() (time.Duration, error) {
	if s.PollInterval == "" {
		return DefaultPollInterval, nil
	}
	d, err := time.ParseDuration(s.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid poll_interval %q: %w", s.PollInterval, err)
	}
	if d < MinPollInterval {
		return 0, fmt.Errorf("poll_interval %s is below the minimum of %s", d, MinPollInterval)
	}
	return d, nil
}

// AbortOnNotifyFailure reports whether a failed notification should stop the poller.
func (s *Settings) AbortOnNotifyFailure() bool {
	return s.Notifications.OnFailure == OnFailureAbort
}

// Validate checks the settings for values the notifier cannot work with.
func (s *Settings) Validate() error {
	if _, err := s.Interval(); err != nil {
		return err
	}
	switch s.Notifications.OnFailure {
	case "", OnFailureLog, OnFailureAbort:
	default:
		return fmt.Errorf("invalid notifications.on_failure %q (expected %q or %q)",
			s.Notifications.OnFailure, OnFailureLog, OnFailureAbort)
	}
	return nil
}

// NotificationSummary returns the configured summary or the default.
func (s *Settings) NotificationSummary() string {
	if s.Notifications.Summary == "" {
		return DefaultSummary
	}
	return s.Notifications.Summary
}
