package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/plemaire/taskdeck/internal/tracker"
	"github.com/plemaire/taskdeck/internal/ui"
	"github.com/plemaire/taskdeck/models"
)

var editFlags taskFlagValues

// editCmd modifies an existing task. Only the flags given on the command
// line are changed; everything else keeps its current value.
var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit an existing task",
	Long: `Edits a task. When no id is given, an interactive prompt lets you
pick one. Only explicitly passed flags overwrite the stored values, so
'taskdeck edit abc123 --due 2026-09-12' changes the due date and nothing
else.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		task, err := pickTask(tr, args, "Select a task to edit")
		if err != nil {
			return err
		}

		fields := fieldsFromTask(task)
		if err := overlayChangedFlags(cmd, &fields, editFlags); err != nil {
			return err
		}

		updated, err := tr.EditTask(task.ID, fields)
		if err != nil {
			PrintError("Could not update the task", err)
			return err
		}
		persistUIState(tr)

		fmt.Printf("Updated task %s: %s\n", ui.ShortID(updated.ID), updated.Title)
		return nil
	},
}

// pickTask resolves the positional id argument or falls back to an
// interactive selection.
func pickTask(tr *tracker.Tracker, args []string, label string) (models.Task, error) {
	if len(args) > 0 {
		task, err := resolveTask(tr, args[0])
		if errors.Is(err, tracker.ErrNotFound) {
			return models.Task{}, fmt.Errorf("no task found with id %q", args[0])
		}
		return task, err
	}
	task, err := selectTaskInteractive(tr, nil, label)
	if errors.Is(err, promptui.ErrInterrupt) {
		return models.Task{}, errors.New("selection cancelled")
	}
	return task, err
}

// fieldsFromTask copies a task's editable fields into a TaskFields value.
func fieldsFromTask(t models.Task) tracker.TaskFields {
	return tracker.TaskFields{
		Title:      t.Title,
		Priority:   t.Priority,
		Category:   t.Category,
		DueDate:    t.DueDate,
		Recurrence: t.Recurrence,
		Tags:       t.Tags,
		Notes:      t.Notes,
		Links:      t.Links,
		Subtasks:   t.Subtasks,
		Status:     t.Status,
		WaitingFor: t.WaitingFor,
	}
}

// overlayChangedFlags applies only the flags the user actually passed.
func overlayChangedFlags(cmd *cobra.Command, fields *tracker.TaskFields, v taskFlagValues) error {
	if cmd.Flags().Changed("title") {
		fields.Title = v.title
	}
	if cmd.Flags().Changed("priority") {
		priority, err := parsePriority(v.priority)
		if err != nil {
			return err
		}
		fields.Priority = priority
	}
	if cmd.Flags().Changed("category") {
		fields.Category = v.category
	}
	if cmd.Flags().Changed("due") {
		fields.DueDate = v.dueDate
	}
	if cmd.Flags().Changed("recurrence") {
		recurrence, err := parseRecurrence(v.recurrence)
		if err != nil {
			return err
		}
		fields.Recurrence = recurrence
	}
	if cmd.Flags().Changed("tag") {
		fields.Tags = v.tags
	}
	if cmd.Flags().Changed("notes") {
		fields.Notes = v.notes
	}
	if cmd.Flags().Changed("link") {
		fields.Links = v.links
	}
	if cmd.Flags().Changed("subtask") {
		var subtasks []models.Subtask
		for _, text := range v.subtasks {
			if strings.TrimSpace(text) == "" {
				continue
			}
			subtasks = append(subtasks, models.NewSubtask(text))
		}
		fields.Subtasks = subtasks
	}
	if cmd.Flags().Changed("status") {
		status, err := parseStatus(v.status)
		if err != nil {
			return err
		}
		fields.Status = status
	}
	if cmd.Flags().Changed("waiting-for") {
		fields.WaitingFor = v.waitingFor
	}
	return nil
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editFlags.title, "title", "t", "", "task title")
	editCmd.Flags().StringVarP(&editFlags.priority, "priority", "p", "", "priority (Lowest, Low, Medium, High, Highest)")
	editCmd.Flags().StringVarP(&editFlags.category, "category", "C", "", "category the task belongs to")
	editCmd.Flags().StringVarP(&editFlags.dueDate, "due", "d", "", "due date (YYYY-MM-DD), empty to clear")
	editCmd.Flags().StringVarP(&editFlags.recurrence, "recurrence", "r", "", "recurrence (daily, weekly, monthly, none)")
	editCmd.Flags().StringArrayVar(&editFlags.tags, "tag", nil, "tag (repeatable, replaces all tags)")
	editCmd.Flags().StringVarP(&editFlags.notes, "notes", "n", "", "free-form notes")
	editCmd.Flags().StringArrayVar(&editFlags.links, "link", nil, "related link (repeatable, replaces all links)")
	editCmd.Flags().StringArrayVar(&editFlags.subtasks, "subtask", nil, "subtask text (repeatable, replaces all subtasks)")
	editCmd.Flags().StringVarP(&editFlags.status, "status", "s", "", "status (todo, in_progress, waiting)")
	editCmd.Flags().StringVarP(&editFlags.waitingFor, "waiting-for", "w", "", "who or what the task is waiting on")
}
