package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for the run summary line.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HeaderStyle for table headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	// LongStyle for long signals.
	LongStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// ShortStyle for short signals.
	ShortStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	// ErrorStyle for failure lines.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	// HelpStyle for secondary text.
	HelpStyle = lipgloss.NewStyle().Faint(true)
)
