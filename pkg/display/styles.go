package display

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	accountStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	typeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	signerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	writableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D946EF"))
	groupStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB"))

	errCodeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
)
