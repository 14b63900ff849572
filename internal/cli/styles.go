package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Width(cellWidth).
			Align(lipgloss.Center)

	hourStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(hourWidth)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth)

	currentCellStyle = cellStyle.
				Background(lipgloss.Color("236")).
				Bold(true)

	todayStyle = headerStyle.
			Foreground(lipgloss.Color("214"))

	availableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	unavailableStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Strikethrough(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

const (
	cellWidth = 14
	hourWidth = 6
)
