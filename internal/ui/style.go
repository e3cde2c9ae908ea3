package ui

import "github.com/charmbracelet/lipgloss"

var (
	// CompletedStyle renders tasks checked off but not yet archived.
	CompletedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)

	// ArchivedStyle renders tasks in the archived history.
	ArchivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	// CheckmarkStyle renders the completion marker.
	CheckmarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Checkbox returns the completion marker for a task.
func Checkbox(completed bool) string {
	if completed {
		return CheckmarkStyle.Render("[x]")
	}
	return "[ ]"
}
