package timeline

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	author   lipgloss.Style
	handle   lipgloss.Style
	text     lipgloss.Style
	reshare  lipgloss.Style
	counts   lipgloss.Style
	selected lipgloss.Style
	idle     lipgloss.Style
	cursor   lipgloss.Style
	status   lipgloss.Style
	help     lipgloss.Style
	empty    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		author:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		handle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		text:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		reshare:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		counts:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		selected: lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(lipgloss.Color("69")).PaddingLeft(1),
		idle:     lipgloss.NewStyle().PaddingLeft(2),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		status:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		help:     lipgloss.NewStyle().Faint(true),
		empty:    lipgloss.NewStyle().Faint(true),
	}
}
