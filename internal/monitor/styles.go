package monitor

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	turnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	leaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	rewardDot     = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Render("●")
	punishmentDot = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render("●")
	exploitDot    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Render("●")
)
