package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plemaire/taskdeck/internal/tracker"
	"github.com/plemaire/taskdeck/internal/ui"
)

// categoryCmd groups category management.
var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
	Long: `Lists, creates, deletes and selects categories. Every task belongs
to exactly one category; deleting a category reassigns its tasks to the
fallback and the last remaining category cannot be deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return categoryListCmd.RunE(cmd, args)
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with open-task counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		fmt.Print(renderCategories(tr))
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		name := args[0]
		if err := tr.CreateCategory(name); err != nil {
			switch {
			case errors.Is(err, tracker.ErrDuplicate):
				return fmt.Errorf("category %q already exists", name)
			case errors.Is(err, tracker.ErrValidation):
				return errors.New("category name cannot be empty")
			default:
				PrintError("Could not create the category", err)
				return err
			}
		}
		fmt.Printf("Created category %q.\n", name)
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a category",
	Long: `Deletes a category. Its tasks move to the fallback category and a
selection pointing at it is cleared. The last remaining category cannot be
deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		name := args[0]
		reassigned, err := tr.DeleteCategory(name)
		if err != nil {
			switch {
			case errors.Is(err, tracker.ErrNotFound):
				return fmt.Errorf("no category named %q", name)
			case errors.Is(err, tracker.ErrBlocked):
				return errors.New("cannot delete the last remaining category")
			default:
				PrintError("Could not delete the category", err)
				return err
			}
		}
		persistUIState(tr)

		if reassigned > 0 {
			fmt.Printf("Deleted category %q; %d task(s) moved to the fallback category.\n", name, reassigned)
		} else {
			fmt.Printf("Deleted category %q.\n", name)
		}
		return nil
	},
}

var categorySelectCmd = &cobra.Command{
	Use:   "select <name>",
	Short: "Toggle the category filter",
	Long: `Selects a category so that lists only show its tasks. Selecting the
already active category clears the filter. Either way the view resets to
'all'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, cleanup, err := GetTracker()
		if err != nil {
			HandleFatalError("Failed to initialize the task tracker", err)
		}
		defer cleanup()

		selected := tr.ToggleCategorySelection(args[0])
		persistUIState(tr)

		if selected == "" {
			fmt.Println("Category filter cleared.")
		} else {
			fmt.Printf("Showing tasks in %q.\n", selected)
		}
		return nil
	},
}

func renderCategories(tr *tracker.Tracker) string {
	return ui.RenderCategories(tr.Categories(), tr.CategoryCounts(), tr.SelectedCategory())
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
	categoryCmd.AddCommand(categorySelectCmd)
}
