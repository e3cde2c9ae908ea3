package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tmarsh/tally/internal/ui"
	"github.com/tmarsh/tally/task"
)

// printActiveTable prints the active list in a table format.
func printActiveTable(tasks []task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}
	fmt.Print(formatActiveTable(tasks, now))
}

func formatActiveTable(tasks []task.Task, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "DONE", "AGE", "TEXT"}, len(tasks))

	for _, item := range tasks {
		text := ui.TruncateTableCell(item.Text)
		if item.Completed {
			text = ui.CompletedStyle.Render(text)
		}
		builder.AddRow([]string{
			strconv.Itoa(item.ID),
			ui.Checkbox(item.Completed),
			ui.FormatTimeAgeShort(item.CreatedAt, now),
			text,
		})
	}

	return builder.String()
}

// printArchivedTable prints the archived history in a table format.
func printArchivedTable(tasks []task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Println("No archived tasks.")
		return
	}
	fmt.Print(formatArchivedTable(tasks, now))
}

func formatArchivedTable(tasks []task.Task, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "ARCHIVED", "TEXT"}, len(tasks))

	for _, item := range tasks {
		archivedAt := "-"
		if item.CompletedAt != nil {
			archivedAt = ui.FormatTimeAgo(*item.CompletedAt, now)
		}
		builder.AddRow([]string{
			strconv.Itoa(item.ID),
			archivedAt,
			ui.ArchivedStyle.Render(ui.TruncateTableCell(item.Text)),
		})
	}

	return builder.String()
}
