package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(lipgloss.Color("#5B8DEF"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	noteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#AAAAAA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	stageStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2A2A2A")).
			Padding(0, 1)
)

// medalColors maps the medal colour names used by the ranking to hex.
var medalColors = map[string]lipgloss.Color{
	"gold":   lipgloss.Color("#FFD700"),
	"silver": lipgloss.Color("#C0C0C0"),
	"peru":   lipgloss.Color("#CD853F"),
}
