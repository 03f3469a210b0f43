package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plemaire/taskdeck/internal/clock"
	"github.com/plemaire/taskdeck/internal/ui"
	"github.com/plemaire/taskdeck/internal/views"
)

var (
	listView   string
	listSearch string
	listSort   string
)

// listCmd renders the current view.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks in the current view",
	Long: `Lists the tasks visible under the current view, category selection
and an optional search term. --view switches the view for this invocation
only; use 'taskdeck view' to change it persistently.

Views: all, today, week, overdue, nodate, completed.
Sort keys: default, dueDate, priority, created, category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		if listView != "" {
			if err := tr.SwitchView(views.View(listView)); err != nil {
				return fmt.Errorf("unknown view %q (use one of: all, today, week, overdue, nodate, completed)", listView)
			}
		}
		key := views.SortKey(listSort)
		if !views.ValidSortKey(key) {
			return fmt.Errorf("unknown sort key %q (use one of: default, dueDate, priority, created, category)", listSort)
		}

		today := clock.StartOfToday(clock.System{})
		visible := tr.Visible(listSearch, key)

		fmt.Println(ui.RenderTitle(tr.CurrentView(), tr.SelectedCategory()))
		fmt.Print(ui.RenderTaskList(visible, today))
		fmt.Println(ui.RenderCounts(tr.RecomputeCounts()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listView, "view", "", "view to list (all, today, week, overdue, nodate, completed)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "filter tasks by a search term")
	listCmd.Flags().StringVar(&listSort, "sort", "default", "sort key (default, dueDate, priority, created, category)")
}
