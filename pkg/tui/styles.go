package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Section   lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Selected  lipgloss.Style
	Overlay   lipgloss.Style
	Footer    lipgloss.Style
	StatusBar lipgloss.Style
}

func DefaultStyles() Styles {
	primary := lipgloss.Color("#0a66c2")
	muted := lipgloss.Color("#6b7280")
	return Styles{
		Header: lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2),
		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Section: lipgloss.NewStyle().
			Bold(true).
			MarginTop(1),
		Body:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().Foreground(muted),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")),
		Selected: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		Footer:    lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		StatusBar: lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
