// Package tracker is the in-memory aggregate over tasks, categories and the
// view/selection state. Every mutation validates its input, applies the
// change, runs category reconciliation or recurrence derivation where
// relevant, stamps ModifiedAt, and persists the full snapshot before
// returning. Single-threaded by construction: one caller, no locking.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/plemaire/taskdeck/internal/category"
	"github.com/plemaire/taskdeck/internal/clock"
	"github.com/plemaire/taskdeck/internal/notify"
	"github.com/plemaire/taskdeck/internal/recur"
	"github.com/plemaire/taskdeck/internal/views"
	"github.com/plemaire/taskdeck/models"
	"github.com/plemaire/taskdeck/store"
)

// TaskFields carries the editable fields of a task, as collected from the
// create and edit forms. ID, CreatedAt and Completed are never set through
// fields.
type TaskFields struct {
	Title      string
	Priority   models.TaskPriority
	Category   string
	DueDate    string
	Recurrence models.Recurrence
	Tags       []string
	Notes      string
	Links      []string
	Subtasks   []models.Subtask
	Status     models.TaskStatus
	WaitingFor string
}

// Tracker owns the live snapshot plus the current view and category
// selection, and orchestrates the pure components around them.
type Tracker struct {
	store    store.SnapshotStore
	clk      clock.Clock
	notifier notify.Notifier

	tasks      []models.Task
	categories []string

	currentView      views.View
	selectedCategory string
}

// New creates a tracker over the given store. A nil notifier discards
// events.
func New(s store.SnapshotStore, clk clock.Clock, notifier notify.Notifier) *Tracker {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Tracker{
		store:       s,
		clk:         clk,
		notifier:    notifier,
		currentView: views.ViewAll,
	}
}

// Load reads the snapshot, normalizes loosely stored tasks (the original
// data had no schema enforcement) and reconciles category integrity. Repairs
// are persisted immediately and never surfaced as errors.
func (tr *Tracker) Load() error {
	snapshot, err := tr.store.Load()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	tr.tasks = snapshot.Tasks
	tr.categories = snapshot.Categories

	touched := false
	for i := range tr.tasks {
		if tr.tasks[i].Normalize() {
			touched = true
		}
	}

	now := tr.clk.Now()
	var reconciled bool
	tr.categories, tr.tasks, reconciled = category.Reconcile(tr.categories, tr.tasks, now)

	if touched || reconciled {
		return tr.save()
	}
	return nil
}

// SeedDefaults populates an empty snapshot with the default categories and,
// when no tasks exist at all, a handful of sample tasks so a fresh install
// has something to show.
func (tr *Tracker) SeedDefaults() error {
	touched := false
	// Load installs the bare fallback on an empty snapshot, so "just the
	// fallback" still counts as unseeded here.
	pristine := len(tr.categories) == 0 ||
		(len(tr.categories) == 1 && tr.categories[0] == models.FallbackCategory)
	if pristine {
		tr.categories = append([]string{}, models.DefaultCategories...)
		touched = true
	}
	if len(tr.tasks) == 0 {
		tr.tasks = sampleTasks(tr.clk.Now())
		touched = true
	}
	if !touched {
		return nil
	}
	return tr.persist()
}

// sampleTasks builds the starter tasks seeded into a fresh snapshot.
func sampleTasks(now time.Time) []models.Task {
	today := clock.StartOfDay(now)

	report := models.NewTask("Finalize monthly report", "Work", now)
	report.Priority = models.PriorityHigh
	report.DueDate = clock.FormatDueDate(clock.AddDays(today, 1))
	report.Status = models.StatusInProgress
	report.Tags = []string{"urgent"}
	report.Notes = "Verify numbers before sending."
	report.Subtasks = []models.Subtask{
		models.NewSubtask("Collect data"),
		models.NewSubtask("Create charts"),
	}

	dentist := models.NewTask("Dentist appointment", "Health", now)
	dentist.DueDate = clock.FormatDueDate(clock.AddDays(today, 7))

	groceries := models.NewTask("Buy milk and bread", "Errands", now)
	groceries.Priority = models.PriorityLow
	groceries.Status = models.StatusWaiting
	groceries.WaitingFor = "Reply from supplier"

	return []models.Task{report, dentist, groceries}
}

// Tasks returns the full task collection in storage order.
func (tr *Tracker) Tasks() []models.Task {
	return tr.tasks
}

// Categories returns the category names in display order.
func (tr *Tracker) Categories() []string {
	return tr.categories
}

// CurrentView returns the active view.
func (tr *Tracker) CurrentView() views.View {
	return tr.currentView
}

// SelectedCategory returns the active category selection, empty when unset.
func (tr *Tracker) SelectedCategory() string {
	return tr.selectedCategory
}

// RestoreUIState reinstates a previously persisted view and category
// selection, ignoring values that no longer make sense.
func (tr *Tracker) RestoreUIState(view views.View, selected string) {
	if views.Valid(view) {
		tr.currentView = view
	}
	if selected != "" && models.ContainsCategory(tr.categories, selected) {
		tr.selectedCategory = selected
	}
}

// Task looks a task up by id.
func (tr *Tracker) Task(id string) (models.Task, bool) {
	for _, t := range tr.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// validateFields enforces the required fields shared by create and edit.
func validateFields(fields *TaskFields) error {
	if strings.TrimSpace(fields.Title) == "" || strings.TrimSpace(fields.Category) == "" {
		return fmt.Errorf("%w: title and category are required", ErrValidation)
	}
	return nil
}

// applyFields copies the editable fields onto the task, enforcing the
// waiting/waitingFor coupling.
func applyFields(t *models.Task, fields TaskFields) {
	t.Title = strings.TrimSpace(fields.Title)
	t.Category = strings.TrimSpace(fields.Category)
	if fields.Priority != "" {
		t.Priority = fields.Priority
	}
	t.DueDate = fields.DueDate
	t.Recurrence = fields.Recurrence
	t.Tags = fields.Tags
	t.Notes = fields.Notes
	t.Links = fields.Links
	t.Subtasks = fields.Subtasks
	if fields.Status != "" {
		t.Status = fields.Status
	}
	if t.Status == models.StatusWaiting {
		t.WaitingFor = strings.TrimSpace(fields.WaitingFor)
	} else {
		t.WaitingFor = ""
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Links == nil {
		t.Links = []string{}
	}
	if t.Subtasks == nil {
		t.Subtasks = []models.Subtask{}
	}
}

// CreateTask appends a new task built from fields. Title and category must
// be non-empty after trimming; otherwise nothing is mutated.
func (tr *Tracker) CreateTask(fields TaskFields) (models.Task, error) {
	if err := validateFields(&fields); err != nil {
		tr.notifier.Notify("Title and category are required", notify.SeverityError)
		return models.Task{}, err
	}

	now := tr.clk.Now()
	task := models.NewTask(strings.TrimSpace(fields.Title), strings.TrimSpace(fields.Category), now)
	applyFields(&task, fields)

	if err := models.ValidateStruct(task); err != nil {
		tr.notifier.Notify("Task is invalid: "+err.Error(), notify.SeverityError)
		return models.Task{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	tr.tasks = append(tr.tasks, task)
	if err := tr.persist(); err != nil {
		return models.Task{}, err
	}
	tr.notifier.Notify("Task created", notify.SeveritySuccess)
	return task, nil
}

// EditTask replaces the editable fields of an existing task, preserving its
// id, creation time and completion flag. Editing an unknown id is a no-op
// signaled with ErrNotFound.
func (tr *Tracker) EditTask(id string, fields TaskFields) (models.Task, error) {
	if err := validateFields(&fields); err != nil {
		tr.notifier.Notify("Title and category are required", notify.SeverityError)
		return models.Task{}, err
	}

	idx := tr.indexOf(id)
	if idx < 0 {
		return models.Task{}, ErrNotFound
	}

	task := tr.tasks[idx]
	applyFields(&task, fields)
	task.ModifiedAt = tr.clk.Now()

	if err := models.ValidateStruct(task); err != nil {
		tr.notifier.Notify("Task is invalid: "+err.Error(), notify.SeverityError)
		return models.Task{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	tr.tasks[idx] = task
	if err := tr.persist(); err != nil {
		return models.Task{}, err
	}
	tr.notifier.Notify("Task updated", notify.SeveritySuccess)
	return task, nil
}

// DeleteTask removes the task if present. Deleting an unknown id is an
// idempotent no-op reported as false.
func (tr *Tracker) DeleteTask(id string) (bool, error) {
	idx := tr.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	tr.tasks = append(tr.tasks[:idx], tr.tasks[idx+1:]...)
	if err := tr.persist(); err != nil {
		return false, err
	}
	tr.notifier.Notify("Task deleted", notify.SeveritySuccess)
	return true, nil
}

// ToggleCompletion flips the task's completed flag. Completing forces the
// status back to todo, clears WaitingFor, and spawns the recurrence
// successor when the task recurs and carries a due date. The successor, if
// any, is returned alongside the updated task. Un-completing takes no
// recurrence action.
func (tr *Tracker) ToggleCompletion(id string) (models.Task, *models.Task, error) {
	idx := tr.indexOf(id)
	if idx < 0 {
		return models.Task{}, nil, ErrNotFound
	}

	now := tr.clk.Now()
	task := &tr.tasks[idx]
	task.Completed = !task.Completed
	task.ModifiedAt = now

	var successor *models.Task
	if task.Completed {
		task.Status = models.StatusTodo
		task.WaitingFor = ""
		successor = recur.OnCompleted(*task, now)
		if successor != nil {
			tr.tasks = append(tr.tasks, *successor)
			tr.notifier.Notify(fmt.Sprintf("Next task created: %s", successor.DueDate), notify.SeverityInfo)
		}
	}

	updated := tr.tasks[idx]
	if err := tr.persist(); err != nil {
		return models.Task{}, nil, err
	}
	return updated, successor, nil
}

// SwitchView sets the current view. The category selection is left alone:
// view and category filters compose.
func (tr *Tracker) SwitchView(v views.View) error {
	if !views.Valid(v) {
		return fmt.Errorf("%w: unknown view %q", ErrValidation, v)
	}
	tr.currentView = v
	return nil
}

// ToggleCategorySelection selects the named category, or clears the
// selection when it is already selected. Either way the view resets to
// "all" so the user is back on the unfiltered list with only the category
// filter applied.
func (tr *Tracker) ToggleCategorySelection(name string) string {
	if tr.selectedCategory == name {
		tr.selectedCategory = ""
	} else {
		tr.selectedCategory = name
	}
	tr.currentView = views.ViewAll
	return tr.selectedCategory
}

// CreateCategory appends a new category. The trimmed name must be non-empty
// and not already taken case-insensitively.
func (tr *Tracker) CreateCategory(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		tr.notifier.Notify("Category name is required", notify.SeverityError)
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	updated, ok := category.Create(tr.categories, trimmed)
	if !ok {
		tr.notifier.Notify("This category already exists.", notify.SeverityError)
		return fmt.Errorf("%w: %s", ErrDuplicate, trimmed)
	}
	tr.categories = updated
	if err := tr.persist(); err != nil {
		return err
	}
	tr.notifier.Notify("Category created", notify.SeveritySuccess)
	return nil
}

// DeleteCategory removes a category, reassigning its tasks to the fallback
// category and clearing the selection when the deleted category was
// selected. Deleting the last remaining category is blocked.
func (tr *Tracker) DeleteCategory(name string) (int, error) {
	result, ok := category.Delete(tr.categories, tr.tasks, name, tr.selectedCategory, tr.clk.Now())
	if !ok {
		return 0, fmt.Errorf("%w: cannot delete the last category", ErrBlocked)
	}
	tr.categories = result.Categories
	tr.tasks = result.Tasks
	if result.ClearSelection {
		tr.selectedCategory = ""
		tr.currentView = views.ViewAll
	}
	if err := tr.persist(); err != nil {
		return 0, err
	}
	if result.Reassigned > 0 {
		tr.notifier.Notify(fmt.Sprintf("%d task(s) moved to %q", result.Reassigned, models.FallbackCategory), notify.SeverityInfo)
	}
	tr.notifier.Notify("Category deleted", notify.SeveritySuccess)
	return result.Reassigned, nil
}

// Visible computes the task list for the current view, selection and search
// term, ordered by the given sort key.
func (tr *Tracker) Visible(searchTerm string, key views.SortKey) []models.Task {
	today := clock.StartOfToday(tr.clk)
	visible := views.Visible(tr.tasks, tr.currentView, tr.selectedCategory, searchTerm, today)
	return views.Sort(visible, key)
}

// RecomputeCounts returns the per-view task counts, ignoring category and
// search filters.
func (tr *Tracker) RecomputeCounts() map[views.View]int {
	return views.Counts(tr.tasks, clock.StartOfToday(tr.clk))
}

// CategoryCounts returns the open-task count per category.
func (tr *Tracker) CategoryCounts() map[string]int {
	return views.CategoryCounts(tr.categories, tr.tasks)
}

// Backup copies the snapshot records to destinationDir.
func (tr *Tracker) Backup(destinationDir string) error {
	return tr.store.Backup(destinationDir)
}

// Restore replaces the snapshot with the records in sourceDir and reloads.
func (tr *Tracker) Restore(sourceDir string) error {
	if err := tr.store.Restore(sourceDir); err != nil {
		return err
	}
	return tr.Load()
}

// indexOf returns the position of the task with the given id, or -1.
func (tr *Tracker) indexOf(id string) int {
	for i := range tr.tasks {
		if tr.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// persist reconciles category integrity and writes the full snapshot. Every
// mutation funnels through here so invariants hold after any operation. On
// a failed save the in-memory state is reloaded from disk so the aggregate
// never drifts from the persisted snapshot.
func (tr *Tracker) persist() error {
	tr.categories, tr.tasks, _ = category.Reconcile(tr.categories, tr.tasks, tr.clk.Now())
	return tr.save()
}

// save writes the snapshot without reconciling.
func (tr *Tracker) save() error {
	err := tr.store.Save(store.Snapshot{Tasks: tr.tasks, Categories: tr.categories})
	if err != nil {
		if snapshot, loadErr := tr.store.Load(); loadErr == nil {
			tr.tasks = snapshot.Tasks
			tr.categories = snapshot.Categories
		}
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
