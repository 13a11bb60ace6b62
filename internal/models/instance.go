package models

import "time"

// InstanceInfo records the running notifier process.
// This corresponds to <data dir>/instance.yaml.
type InstanceInfo struct {
	Version   int       `yaml:"version"`
	PID       int       `yaml:"pid"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewInstanceInfo creates a new instance record with current values.
func NewInstanceInfo(pid int) *InstanceInfo {
	return &InstanceInfo{
		Version:   1,
		PID:       pid,
		StartedAt: time.Now().UTC(),
	}
}
