package cli

import "github.com/charmbracelet/lipgloss"

// Board-and-stones palette shared by status and version output.
var (
	colorStone = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorMuted = lipgloss.AdaptiveColor{Light: "244", Dark: "243"}
	colorBoard = lipgloss.AdaptiveColor{Light: "130", Dark: "179"}
	colorMove  = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorOK    = lipgloss.AdaptiveColor{Light: "22", Dark: "114"}
	colorFail  = lipgloss.AdaptiveColor{Light: "124", Dark: "203"}
)

var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorBoard)
	styleVersion = styleBrand.Bold(false)
	styleLabel   = lipgloss.NewStyle().Foreground(colorMuted)
	styleValue   = lipgloss.NewStyle().Foreground(colorStone)
	styleHint    = styleLabel.Italic(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorOK)
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(colorMove)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorFail)
)
