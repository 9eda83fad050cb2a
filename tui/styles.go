package tui

import "github.com/charmbracelet/lipgloss"

var (
	AccentColor    = lipgloss.Color("#01875f")
	SecondaryColor = lipgloss.Color("#4285f4")
	TextColor      = lipgloss.Color("252")
	MutedColor     = lipgloss.Color("243")
	ErrorColor     = lipgloss.Color("#d93025")
	StarColor      = lipgloss.Color("#fbbc04")

	TitleStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SectionStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			MarginTop(1)

	ScoreStyle = lipgloss.NewStyle().
			Foreground(StarColor)

	HintStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)
