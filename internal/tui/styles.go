package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorPurple    = lipgloss.Color("#8524a6")
	colorRed       = lipgloss.Color("#FF5555")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray)

	debugBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorPurple).
			Foreground(colorLightGray).
			Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Bold(true)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPurple).
				Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true)
)
