package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plemaire/taskdeck/internal/clock"
	"github.com/plemaire/taskdeck/internal/logger"
	"github.com/plemaire/taskdeck/internal/tracker"
	"github.com/plemaire/taskdeck/internal/ui"
	"github.com/plemaire/taskdeck/internal/views"
	"github.com/plemaire/taskdeck/models"
	"github.com/plemaire/taskdeck/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoTasksFound is returned when an interactive selection is attempted
	// but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// ErrAmbiguousID is returned when an id prefix matches several tasks.
	ErrAmbiguousID = errors.New("ambiguous task id prefix")
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "taskdeck keeps your personal tasks in order.",
	Long: `taskdeck is a personal task tracker for the command line.
Tasks carry priorities, categories, due dates, tags, subtasks and links;
views slice them by due date (today, this week, overdue, no date) or by
completion, and recurring tasks respawn when you finish them.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetCommand(cmd.Name())
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	defer logger.HandlePanic()
	logger.SetVersion(version)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskdeck/.taskdeck.yaml or $HOME/.taskdeck.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetStore initializes and returns the snapshot store per the unified
// application config.
func GetStore() (store.SnapshotStore, error) {
	s := store.NewFileSnapshotStore()
	config := GetConfig()

	err := s.Initialize(map[string]string{
		"dataDir":        config.Data.Dir,
		"dataFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", config.Data.Dir, err)
	}
	logger.SetBasePath(config.Project.RootDir)
	return s, nil
}

// GetTracker loads the full aggregate: snapshot, normalization,
// reconciliation and persisted UI state. The returned cleanup must be called
// when the command is done.
func GetTracker() (*tracker.Tracker, func(), error) {
	s, err := GetStore()
	if err != nil {
		return nil, nil, err
	}

	tr := tracker.New(s, clock.System{}, ui.StderrNotifier())
	if err := tr.Load(); err != nil {
		_ = s.Close()
		return nil, nil, err
	}

	config := GetConfig()
	tr.RestoreUIState(views.View(config.UI.View), config.UI.Category)

	cleanup := func() {
		if err := s.Close(); err != nil {
			LogError("failed to close snapshot store", err)
		}
	}
	return tr, cleanup, nil
}

// persistUIState writes the tracker's view/selection back to the config
// file. A failure here is reported but never fatal.
func persistUIState(tr *tracker.Tracker) {
	if err := SaveUIState(string(tr.CurrentView()), tr.SelectedCategory()); err != nil {
		LogError("failed to persist UI state", err)
	}
}

// resolveTask finds a task by full id or unique id prefix.
func resolveTask(tr *tracker.Tracker, idOrPrefix string) (models.Task, error) {
	if idOrPrefix == "" {
		return models.Task{}, tracker.ErrNotFound
	}
	if task, ok := tr.Task(idOrPrefix); ok {
		return task, nil
	}

	var matches []models.Task
	for _, t := range tr.Tasks() {
		if strings.HasPrefix(t.ID, idOrPrefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return models.Task{}, tracker.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return models.Task{}, fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousID, idOrPrefix, len(matches))
	}
}

// selectTaskInteractive presents a prompt to the user to select a task from
// a list, optionally narrowed by a filter function.
func selectTaskInteractive(tr *tracker.Tracker, filterFn func(models.Task) bool, label string) (models.Task, error) {
	var tasks []models.Task
	for _, t := range tr.Tasks() {
		if filterFn == nil || filterFn(t) {
			tasks = append(tasks, t)
		}
	}
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} ({{ .Category }}, {{ .Priority }})`,
		Inactive: `  {{ .Title | faint }} ({{ .Category }}, {{ .Priority }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }}`,
		Details: `
--------- Task ----------
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Category:\t" | faint }} {{ .Category }}
{{ "Priority:\t" | faint }} {{ .Priority }}
{{ "Due:\t" | faint }} {{ .DueDate }}`,
	}

	searcher := func(input string, index int) bool {
		task := tasks[index]
		name := strings.ToLower(task.Title)
		input = strings.ToLower(input)
		return strings.Contains(name, input) || strings.Contains(task.ID, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err // includes promptui.ErrInterrupt
	}
	return tasks[i], nil
}
