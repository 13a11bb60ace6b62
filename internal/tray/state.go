// Package tray implements the system tray status icon.
package tray

import (
	"errors"
	"fmt"
	"os"
)

// ErrTray wraps failures to set up the tray icon.
var ErrTray = errors.New("tray icon failed")

// Status is the aggregate state the icon shows.
type Status int

const (
	StatusIdle Status = iota
	StatusAwaiting
)

// StatusFor returns awaiting when at least one game waits for a move.
func StatusFor(awaiting int) Status {
	if awaiting > 0 {
		return StatusAwaiting
	}
	return StatusIdle
}

func (s Status) String() string {
	if s == StatusAwaiting {
		return "awaiting"
	}
	return "idle"
}

// Sink receives the number of games awaiting a move after every poll cycle.
type Sink interface {
	SetAwaiting(count int)
}

// Nop is the Sink used when the tray is disabled.
type Nop struct{}

// SetAwaiting does nothing.
func (Nop) SetAwaiting(int) {}

// Icons holds the two PNG images the tray switches between.
type Icons struct {
	Idle     []byte
	Awaiting []byte
}

// For returns the image for s.
func (i Icons) For(s Status) []byte {
	if s == StatusAwaiting {
		return i.Awaiting
	}
	return i.Idle
}

// LoadIcons reads the idle and awaiting icon files.
func LoadIcons(idlePath, awaitingPath string) (Icons, error) {
	idle, err := os.ReadFile(idlePath)
	if err != nil {
		return Icons{}, fmt.Errorf("%w: read idle icon: %v", ErrTray, err)
	}
	awaiting, err := os.ReadFile(awaitingPath)
	if err != nil {
		return Icons{}, fmt.Errorf("%w: read awaiting icon: %v", ErrTray, err)
	}
	return Icons{Idle: idle, Awaiting: awaiting}, nil
}

func formatTooltip(awaiting int) string {
	switch awaiting {
	case 0:
		return "ogs-notify: no games awaiting your move"
	case 1:
		return "ogs-notify: 1 game awaiting your move"
	default:
		return fmt.Sprintf("ogs-notify: %d games awaiting your move", awaiting)
	}
}
