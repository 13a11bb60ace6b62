package tui

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim   = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorRed   = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	errorStyle = lipgloss.NewStyle().Foreground(colorRed)
	hintStyle  = lipgloss.NewStyle().Foreground(colorDim)
)
