package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C084FC")).
			Padding(1, 2)

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(14)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#E11D48")).
			Bold(true).
			Padding(0, 1)

	correctStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#15803D")).
			Background(lipgloss.Color("#DCFCE7")).
			Bold(true).
			Padding(0, 1)

	wrongStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B91C1C")).
			Background(lipgloss.Color("#FEE2E2")).
			Bold(true).
			Padding(0, 1)

	optionStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#CBD5E1")).
			Padding(0, 1)

	dragStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FDE047"))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)
)

// swatch draws a color sample, highlighted when selected.
func swatch(color string, selected bool) string {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("███")
	if selected {
		return "[" + s + "]"
	}
	return " " + s + " "
}
