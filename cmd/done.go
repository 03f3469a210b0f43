package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plemaire/taskdeck/internal/ui"
	"github.com/plemaire/taskdeck/internal/utils"
	"github.com/plemaire/taskdeck/models"
)

// doneCmd toggles a task's completion. Completing a recurring task with a
// due date spawns its successor.
var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task's completion",
	Long: `Marks a task complete, or reopens it if it is already complete.
Completing a recurring task creates the next occurrence with the due date
advanced by the recurrence period.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		task, err := pickTask(tr, args, "Select a task to complete")
		if err != nil {
			return err
		}

		updated, successor, err := tr.ToggleCompletion(task.ID)
		if err != nil {
			PrintError("Could not toggle the task", err)
			return err
		}
		persistUIState(tr)

		if updated.Completed {
			fmt.Printf("Completed task %s: %s\n", ui.ShortID(updated.ID), updated.Title)
		} else {
			fmt.Printf("Reopened task %s: %s\n", ui.ShortID(updated.ID), updated.Title)
		}
		if successor != nil {
			fmt.Printf("Next occurrence %s due %s (%s)\n",
				ui.ShortID(successor.ID),
				utils.FormatDueDate(successor.DueDate),
				models.RecurrenceLabels[successor.Recurrence])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
