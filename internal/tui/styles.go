package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary       = lipgloss.Color("205") // Pink
	secondary     = lipgloss.Color("63")  // Purple
	textPrimary   = lipgloss.Color("252")
	textSecondary = lipgloss.Color("245")
	textMuted     = lipgloss.Color("240")
	warning       = lipgloss.Color("220") // Yellow
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Foreground(textPrimary).
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primary).
				PaddingLeft(0)

	summaryStyle = lipgloss.NewStyle().
			Foreground(textMuted).
			PaddingLeft(4)

	badgeStyle = lipgloss.NewStyle().
			Foreground(textPrimary).
			Background(lipgloss.Color("237")).
			Padding(0, 1).
			MarginRight(1)

	ratingStyle = lipgloss.NewStyle().Bold(true).Foreground(warning)

	mutedStyle = lipgloss.NewStyle().Foreground(textSecondary)

	helpStyle = lipgloss.NewStyle().
			Foreground(textMuted).
			MarginTop(1)
)
