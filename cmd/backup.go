package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// backupCmd copies the data files to a directory of the user's choice.
var backupCmd = &cobra.Command{
	Use:   "backup <dir>",
	Short: "Back up the task data to a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		if err := tr.Backup(args[0]); err != nil {
			PrintError("Backup failed", err)
			return err
		}
		fmt.Printf("Backed up %d tasks and %d categories to %s.\n",
			len(tr.Tasks()), len(tr.Categories()), args[0])
		return nil
	},
}

// restoreCmd replaces the current data with a previous backup.
var restoreCmd = &cobra.Command{
	Use:   "restore <dir>",
	Short: "Restore task data from a backup directory",
	Long: `Replaces the current tasks and categories with the contents of a
backup directory created by 'taskdeck backup'. The restored snapshot goes
through the same normalization and category reconciliation as any load.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		if err := tr.Restore(args[0]); err != nil {
			PrintError("Restore failed", err)
			return err
		}
		fmt.Printf("Restored %d tasks and %d categories from %s.\n",
			len(tr.Tasks()), len(tr.Categories()), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
