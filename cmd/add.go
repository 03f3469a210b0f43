package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plemaire/taskdeck/internal/ui"
)

var addFlags taskFlagValues

// addCmd creates a new task.
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Adds a task to the tracker. The title can be given as arguments or
via --title. Category defaults to the first known category when omitted.

Examples:
  taskdeck add "Buy groceries" --category Errands --due 2026-09-01
  taskdeck add "Weekly review" --category Work --recurrence weekly --due 2026-09-05
  taskdeck add "Call plumber" --priority High --tag home --tag urgent`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		if len(args) > 0 {
			addFlags.title = strings.Join(args, " ")
		}
		if addFlags.category == "" {
			if cats := tr.Categories(); len(cats) > 0 {
				addFlags.category = cats[0]
			}
		}

		fields, err := addFlags.toTaskFields()
		if err != nil {
			return err
		}

		task, err := tr.CreateTask(fields)
		if err != nil {
			PrintError("Could not create the task", err)
			return err
		}
		persistUIState(tr)

		fmt.Printf("Created task %s: %s\n", ui.ShortID(task.ID), task.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addFlags.title, "title", "t", "", "task title")
	addCmd.Flags().StringVarP(&addFlags.priority, "priority", "p", "Medium", "priority (Lowest, Low, Medium, High, Highest)")
	addCmd.Flags().StringVarP(&addFlags.category, "category", "C", "", "category the task belongs to")
	addCmd.Flags().StringVarP(&addFlags.dueDate, "due", "d", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addFlags.recurrence, "recurrence", "r", "", "recurrence (daily, weekly, monthly)")
	addCmd.Flags().StringArrayVar(&addFlags.tags, "tag", nil, "tag (repeatable)")
	addCmd.Flags().StringVarP(&addFlags.notes, "notes", "n", "", "free-form notes")
	addCmd.Flags().StringArrayVar(&addFlags.links, "link", nil, "related link (repeatable)")
	addCmd.Flags().StringArrayVar(&addFlags.subtasks, "subtask", nil, "subtask text (repeatable)")
	addCmd.Flags().StringVarP(&addFlags.status, "status", "s", "todo", "status (todo, in_progress, waiting)")
	addCmd.Flags().StringVarP(&addFlags.waitingFor, "waiting-for", "w", "", "who or what the task is waiting on")
}
