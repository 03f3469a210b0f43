package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// initCmd bootstraps the data directory with the default categories and a
// couple of starter tasks.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize taskdeck in the current directory",
	Long: `Creates the data directory, seeds the default categories
(Work, Personal, Errands, Health) and a few sample tasks so the first
'taskdeck list' has something to show. Running init on an already seeded
directory is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		if len(tr.Tasks()) > 0 {
			fmt.Println("taskdeck is already initialized here.")
			return nil
		}
		if err := tr.SeedDefaults(); err != nil {
			HandleFatalError("Failed to seed default data", err)
		}

		fmt.Printf("Initialized taskdeck with %d categories and %d sample tasks.\n",
			len(tr.Categories()), len(tr.Tasks()))
		fmt.Println("Run 'taskdeck list' to see them.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
