package cmd

import (
	"fmt"
	"strings"

	"github.com/plemaire/taskdeck/internal/tracker"
	"github.com/plemaire/taskdeck/models"
)

// taskFlagValues holds the raw flag values shared by add and edit.
type taskFlagValues struct {
	title      string
	priority   string
	category   string
	dueDate    string
	recurrence string
	tags       []string
	notes      string
	links      []string
	subtasks   []string
	status     string
	waitingFor string
}

// parsePriority accepts the priority levels case-insensitively.
func parsePriority(s string) (models.TaskPriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "medium":
		return models.PriorityMedium, nil
	case "lowest":
		return models.PriorityLowest, nil
	case "low":
		return models.PriorityLow, nil
	case "high":
		return models.PriorityHigh, nil
	case "highest":
		return models.PriorityHighest, nil
	default:
		return "", fmt.Errorf("invalid priority %q (use Lowest, Low, Medium, High or Highest)", s)
	}
}

func parseStatus(s string) (models.TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "todo":
		return models.StatusTodo, nil
	case "in_progress", "in-progress", "doing":
		return models.StatusInProgress, nil
	case "waiting":
		return models.StatusWaiting, nil
	default:
		return "", fmt.Errorf("invalid status %q (use todo, in_progress or waiting)", s)
	}
}

func parseRecurrence(s string) (models.Recurrence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return models.RecurrenceNone, nil
	case "daily":
		return models.RecurrenceDaily, nil
	case "weekly":
		return models.RecurrenceWeekly, nil
	case "monthly":
		return models.RecurrenceMonthly, nil
	default:
		return "", fmt.Errorf("invalid recurrence %q (use daily, weekly, monthly or none)", s)
	}
}

// toTaskFields converts raw flag values into tracker fields. Subtask flags
// are plain text lines; each becomes an unchecked checklist entry.
func (v taskFlagValues) toTaskFields() (tracker.TaskFields, error) {
	priority, err := parsePriority(v.priority)
	if err != nil {
		return tracker.TaskFields{}, err
	}
	status, err := parseStatus(v.status)
	if err != nil {
		return tracker.TaskFields{}, err
	}
	recurrence, err := parseRecurrence(v.recurrence)
	if err != nil {
		return tracker.TaskFields{}, err
	}

	var subtasks []models.Subtask
	for _, text := range v.subtasks {
		if strings.TrimSpace(text) == "" {
			continue
		}
		subtasks = append(subtasks, models.NewSubtask(text))
	}

	return tracker.TaskFields{
		Title:      v.title,
		Priority:   priority,
		Category:   v.category,
		DueDate:    v.dueDate,
		Recurrence: recurrence,
		Tags:       v.tags,
		Notes:      v.notes,
		Links:      v.links,
		Subtasks:   subtasks,
		Status:     status,
		WaitingFor: v.waitingFor,
	}, nil
}
