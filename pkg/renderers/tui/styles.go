package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the view.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Country  lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	Disabled lipgloss.Style
}

// DefaultStyles returns the stock palette.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1),
		Label:    lipgloss.NewStyle().Width(9).Foreground(lipgloss.Color("245")),
		Country:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Status:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Disabled: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241")),
	}
}
