package cli

import "github.com/charmbracelet/lipgloss"

var (
	userTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	adminTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	badgeStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	alertStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	currentStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
)
