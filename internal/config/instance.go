package config

import (
	"fmt"
	"os"
	"syscall"

	"github.com/ogs-notify/ogs-notify/internal/models"
)

// LoadInstanceInfo loads the running notifier's record from instance.yaml.
// Returns nil if the file doesn't exist.
func LoadInstanceInfo() (*models.InstanceInfo, error) {
	path, err := InstanceFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.InstanceInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RemoveInstanceInfo removes the instance.yaml file.
func RemoveInstanceInfo() error {
	path, err := InstanceFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsInstanceRunning checks if another notifier process is still running.
// Returns true if instance.yaml exists and the PID is alive.
func IsInstanceRunning() (bool, *models.InstanceInfo, error) {
	info, err := LoadInstanceInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	if info.PID == os.Getpid() {
		return false, info, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		// On Unix, FindProcess always succeeds
		return false, info, nil
	}

	// Signal 0 only checks for existence
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = RemoveInstanceInfo()
		return false, info, nil
	}

	return true, info, nil
}

// AcquireInstance records this process in instance.yaml, refusing to start a
// second notifier for the same data directory.
func AcquireInstance() error {
	running, info, err := IsInstanceRunning()
	if err != nil {
		return fmt.Errorf("failed to check for a running notifier: %w", err)
	}
	if running {
		return fmt.Errorf("ogs-notify is already running (PID %d, started %s)",
			info.PID, info.StartedAt.Local().Format("2006-01-02 15:04"))
	}

	if err := EnsureDataDir(); err != nil {
		return err
	}
	path, err := InstanceFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, models.NewInstanceInfo(os.Getpid()))
}

// ReleaseInstance removes instance.yaml if it still belongs to this process.
func ReleaseInstance() error {
	info, err := LoadInstanceInfo()
	if err != nil {
		return err
	}
	if info == nil || info.PID != os.Getpid() {
		return nil
	}
	return RemoveInstanceInfo()
}
