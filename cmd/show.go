package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plemaire/taskdeck/internal/clock"
	"github.com/plemaire/taskdeck/internal/ui"
)

// showCmd prints the full detail of one task.
var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show a task's full details",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		task, err := pickTask(tr, args, "Select a task to show")
		if err != nil {
			return err
		}

		today := clock.StartOfToday(clock.System{})
		fmt.Print(ui.RenderDetail(task, today))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
