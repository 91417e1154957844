package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Main application style
	App = lipgloss.NewStyle().
		Padding(1, 2)

	// Title style for the header line
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7")).
			Padding(0, 1)

	// Status style for info messages
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595"))

	// Error style for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	// Cell under the cursor
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7"))

	// Cell style for other maps
	CellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	// Marker for liked maps
	LikedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D08770")).
			Bold(true)

	// Settings panel box
	PanelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7B61FF"))
)
