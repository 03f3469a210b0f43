// Package ui renders task lists, per-view counts and task detail for the
// terminal. It consumes plain data from the tracker and never reaches back
// into it.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/plemaire/taskdeck/internal/clock"
	"github.com/plemaire/taskdeck/internal/links"
	"github.com/plemaire/taskdeck/internal/notify"
	"github.com/plemaire/taskdeck/internal/utils"
	"github.com/plemaire/taskdeck/internal/views"
	"github.com/plemaire/taskdeck/models"
)

// RenderTitle renders the view title line, suffixed with the category
// selection when one is active ("Today • Work").
func RenderTitle(view views.View, selectedCategory string) string {
	base := views.Titles[view]
	if base == "" {
		base = "Tasks"
	}
	if selectedCategory != "" {
		base += " • " + selectedCategory
	}
	return StyleHeader.Render(base)
}

// RenderTaskList renders the visible tasks as a table. today is the local
// midnight used to flag overdue rows.
func RenderTaskList(tasks []models.Task, today time.Time) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render("No tasks here.") + "\n"
	}

	table := &Table{
		Headers:  []string{"", "ID", "Title", "Priority", "Status", "Category", "Due", "Tags"},
		MaxWidth: 36,
	}
	for _, t := range tasks {
		table.Rows = append(table.Rows, []string{
			checkboxCell(t),
			ShortID(t.ID),
			t.Title,
			string(t.Priority),
			statusCell(t),
			t.Category,
			dueCell(t, today),
			strings.Join(t.Tags, ","),
		})
	}
	return table.Render()
}

func checkboxCell(t models.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

func statusCell(t models.Task) string {
	if t.Completed {
		return "Done"
	}
	label := models.StatusLabels[t.Status]
	if t.Status == models.StatusWaiting && t.WaitingFor != "" {
		label += ": " + utils.Truncate(t.WaitingFor, 20)
	}
	return label
}

func dueCell(t models.Task, today time.Time) string {
	if !t.HasDueDate() {
		return ""
	}
	text := utils.FormatDueDate(t.DueDate)
	if due, ok := clock.ParseDueDate(t.DueDate); ok && !t.Completed && due.Before(today) {
		return StyleOverdue.Render(text + " !")
	}
	return text
}

// RenderCounts renders the per-view counts footer in view display order.
func RenderCounts(counts map[views.View]int) string {
	parts := make([]string, 0, len(views.Order))
	for _, v := range views.Order {
		parts = append(parts, fmt.Sprintf("%s %d", views.Titles[v], counts[v]))
	}
	return StyleSubtle.Render(strings.Join(parts, " · "))
}

// RenderCategories renders the category list with open-task counts, marking
// the active selection.
func RenderCategories(categories []string, counts map[string]int, selected string) string {
	var sb strings.Builder
	for _, c := range categories {
		marker := "  "
		name := c
		if c == selected {
			marker = StylePrimary.Render("» ")
			name = StylePrimary.Render(c)
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", marker, name, StyleSubtle.Render(fmt.Sprintf("(%d)", counts[c]))))
	}
	return sb.String()
}

// RenderDetail renders the full detail of a single task.
func RenderDetail(t models.Task, today time.Time) string {
	var sb strings.Builder

	title := t.Title
	if t.Completed {
		title = StyleCompleted.Render(title)
	} else {
		title = StyleTitle.Render(title)
	}
	sb.WriteString(title + "\n")
	sb.WriteString(StyleSubtle.Render("ID: "+t.ID) + "\n\n")

	writeField(&sb, "Priority", string(t.Priority))
	writeField(&sb, "Category", t.Category)
	if t.HasDueDate() {
		writeField(&sb, "Due", dueCell(t, today))
	}
	if t.Recurrence != models.RecurrenceNone {
		writeField(&sb, "Repeats", models.RecurrenceLabels[t.Recurrence])
	}
	if t.Completed {
		writeField(&sb, "Status", "Done")
	} else {
		writeField(&sb, "Status", models.StatusLabels[t.Status])
		if t.Status == models.StatusWaiting && t.WaitingFor != "" {
			writeField(&sb, "Waiting for", StyleWaiting.Render(t.WaitingFor))
		}
	}
	if len(t.Tags) > 0 {
		writeField(&sb, "Tags", StyleTag.Render(strings.Join(t.Tags, ", ")))
	}
	if t.Notes != "" {
		sb.WriteString("\n" + StyleText.Render(t.Notes) + "\n")
	}

	if linkList := links.Extract(t.Links); len(linkList) > 0 {
		sb.WriteString("\n" + StyleTitle.Render("Links") + "\n")
		for _, l := range linkList {
			sb.WriteString("  " + StyleTag.Render(l.Href) + "\n")
		}
	}

	if done, total := t.SubtaskProgress(); total > 0 {
		sb.WriteString("\n" + StyleTitle.Render(fmt.Sprintf("Subtasks (%d/%d)", done, total)) + "\n")
		for _, st := range t.Subtasks {
			box := "[ ]"
			text := st.Text
			if st.Completed {
				box = "[x]"
				text = StyleCompleted.Render(text)
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", box, text))
		}
	}

	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	sb.WriteString(StyleSubtle.Render(label+":") + " " + value + "\n")
}

// StderrNotifier renders notifications to stderr, color-coded by severity.
func StderrNotifier() notify.Notifier {
	return notify.Func(func(message string, severity notify.Severity) {
		style := StyleNotifyInfo
		switch severity {
		case notify.SeveritySuccess:
			style = StyleNotifySuccess
		case notify.SeverityError:
			style = StyleNotifyError
		}
		fmt.Fprintln(os.Stderr, style.Render(message))
	})
}
