package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plemaire/taskdeck/internal/views"
)

// viewCmd switches the persistent current view.
var viewCmd = &cobra.Command{
	Use:   "view [name]",
	Short: "Show or switch the current view",
	Long: `Without arguments, prints the current view and per-view counts.
With a view name (all, today, week, overdue, nodate, completed), switches
to it; the setting sticks across invocations. The category selection is
kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		if len(args) == 0 {
			counts := tr.RecomputeCounts()
			for _, v := range views.Order {
				marker := "  "
				if v == tr.CurrentView() {
					marker = "» "
				}
				fmt.Printf("%s%-10s %d\n", marker, views.Titles[v], counts[v])
			}
			return nil
		}

		v := views.View(args[0])
		if err := tr.SwitchView(v); err != nil {
			return fmt.Errorf("unknown view %q (use one of: all, today, week, overdue, nodate, completed)", args[0])
		}
		persistUIState(tr)

		fmt.Printf("Switched to the %s view.\n", views.Titles[v])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
