package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Terminal palette.
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorMuted     = lipgloss.Color("#6C7086")
	colorSuccess   = lipgloss.Color("#A6E3A1")
	colorWarning   = lipgloss.Color("#F9E2AF")
	colorBorder    = lipgloss.Color("#45475A")
)

// Output styles. lipgloss drops colour when stdout is not a terminal.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorSecondary)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	tableBorder   = lipgloss.NewStyle().Foreground(colorBorder)
	indentedStyle = lipgloss.NewStyle().PaddingLeft(6).Foreground(colorMuted)
)
