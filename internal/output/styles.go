package output

import "github.com/charmbracelet/lipgloss"

//nolint:gochecknoglobals // lipgloss styles are shared by every human formatter
var (
	colorCritical = lipgloss.Color("160") // Red
	colorSubtle   = lipgloss.Color("241") // Gray

	styleHeader   = lipgloss.NewStyle().Foreground(colorSubtle).Bold(true)
	styleGroup    = lipgloss.NewStyle().Bold(true)
	styleCritical = lipgloss.NewStyle().Foreground(colorCritical)
	styleSubtle   = lipgloss.NewStyle().Foreground(colorSubtle)
)
