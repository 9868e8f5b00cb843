package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#2f6f9f")
	green  = lipgloss.Color("#2e7d32")
	red    = lipgloss.Color("#c62828")
	muted  = lipgloss.Color("#6b7280")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Width(10).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(muted).PaddingLeft(10)
	helpStyle  = lipgloss.NewStyle().Foreground(muted).MarginTop(1)

	validMark   = lipgloss.NewStyle().Foreground(green).Render("✔")
	invalidMark = lipgloss.NewStyle().Foreground(red).Render("✘")
	errorText   = lipgloss.NewStyle().Foreground(red).PaddingLeft(10)

	suggestionStyle       = lipgloss.NewStyle().PaddingLeft(12)
	activeSuggestionStyle = lipgloss.NewStyle().PaddingLeft(10).Foreground(lipgloss.Color("#ffffff")).Background(accent)

	buttonStyle        = lipgloss.NewStyle().Padding(0, 2).MarginTop(1).Border(lipgloss.RoundedBorder()).BorderForeground(muted)
	focusedButtonStyle = buttonStyle.BorderForeground(accent).Foreground(accent).Bold(true)

	pendingStyle = lipgloss.NewStyle().Foreground(muted).Italic(true)
	successStyle = lipgloss.NewStyle().Foreground(green).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(red).Bold(true)
)
