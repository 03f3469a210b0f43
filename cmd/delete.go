package cmd

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/plemaire/taskdeck/internal/ui"
)

var deleteForce bool

// deleteCmd removes a task permanently.
var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		task, err := pickTask(tr, args, "Select a task to delete")
		if err != nil {
			return err
		}

		if !deleteForce {
			prompt := promptui.Prompt{
				Label:     fmt.Sprintf("Delete %q", task.Title),
				IsConfirm: true,
			}
			if result, err := prompt.Run(); err != nil || strings.ToLower(result) != "y" {
				fmt.Println("Deletion cancelled.")
				return nil
			}
		}

		deleted, err := tr.DeleteTask(task.ID)
		if err != nil {
			PrintError("Could not delete the task", err)
			return err
		}
		if !deleted {
			fmt.Printf("Task %s was already gone.\n", ui.ShortID(task.ID))
			return nil
		}
		persistUIState(tr)

		fmt.Printf("Deleted task %s: %s\n", ui.ShortID(task.ID), task.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "delete without confirmation")
}
