package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/plemaire/taskdeck/internal/clock"
	"github.com/plemaire/taskdeck/internal/ui"
)

// watchDebounce coalesces the write+rename bursts a single save produces.
const watchDebounce = 250 * time.Millisecond

// watchCmd re-renders the current view whenever the data files change on
// disk, e.g. from another terminal.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the data directory and re-render on changes",
	Long: `Renders the current view and keeps the terminal updated as the data
files change. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()
		if err := os.MkdirAll(config.Data.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory %s: %w", config.Data.Dir, err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(config.Data.Dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", config.Data.Dir, err)
		}

		if err := renderOnce(); err != nil {
			return err
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		var timer *time.Timer
		redraw := make(chan struct{}, 1)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case redraw <- struct{}{}:
					default:
					}
				})
			case <-redraw:
				if err := renderOnce(); err != nil {
					LogError("failed to re-render", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				LogError("watch error", err)
			case <-sigCh:
				fmt.Println("\nStopped watching.")
				return nil
			}
		}
	},
}

// renderOnce loads a fresh snapshot and prints the current view. The store
// is opened and closed per render so the data lock is not held while idle.
func renderOnce() error {
	tr, cleanup, err := GetTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	today := clock.StartOfToday(clock.System{})

	fmt.Print("\033[H\033[2J") // clear screen
	fmt.Println(ui.RenderTitle(tr.CurrentView(), tr.SelectedCategory()))
	fmt.Print(ui.RenderTaskList(tr.Visible("", ""), today))
	fmt.Println(ui.RenderCounts(tr.RecomputeCounts()))
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
