package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tmarsh/tally/internal/ui"
	"github.com/tmarsh/tally/task"
)

type taskItem struct {
	task     task.Task
	archived bool
}

func (item taskItem) FilterValue() string {
	return item.task.Text
}

func taskItems(tasks []task.Task, archived bool) []list.Item {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t, archived: archived})
	}
	return items
}

type itemDelegate struct {
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
}

func newItemDelegate() itemDelegate {
	return itemDelegate{
		normalStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")),
	}
}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(taskItem)
	if !ok {
		return
	}

	line := formatTaskLine(item, m.Width(), time.Now())
	style := d.normalStyle
	switch {
	case index == m.Index():
		style = d.selectedStyle
	case item.archived:
		style = ui.ArchivedStyle
	case item.task.Completed:
		style = ui.CompletedStyle
	}
	fmt.Fprint(w, style.Render(line))
}

func formatTaskLine(item taskItem, width int, now time.Time) string {
	marker := "[ ]"
	if item.task.Completed {
		marker = "[x]"
	}

	stamp := ui.FormatTimeAgeShort(item.task.CreatedAt, now)
	if item.archived && item.task.CompletedAt != nil {
		stamp = ui.FormatTimeAgeShort(*item.task.CompletedAt, now)
	}

	line := fmt.Sprintf("%-4d %s %s  (%s)", item.task.ID, marker, item.task.Text, stamp)
	if width <= 0 {
		return line
	}
	return runewidth.Truncate(line, width, "...")
}
