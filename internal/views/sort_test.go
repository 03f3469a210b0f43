package views

import (
	"testing"
	"time"

	"github.com/plemaire/taskdeck/models"
)

func sortable(title, due string, priority models.TaskPriority, completed bool) models.Task {
	return models.Task{
		Title:     title,
		DueDate:   due,
		Priority:  priority,
		Completed: completed,
		Category:  "Work",
		Status:    models.StatusTodo,
	}
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func assertOrder(t *testing.T, got []models.Task, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tasks %v, want %d", len(got), titles(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("order = %v, want %v", titles(got), want)
		}
	}
}

func TestSortDefault(t *testing.T) {
	tasks := []models.Task{
		sortable("done", "2024-01-01", models.PriorityHighest, true),
		sortable("undated-low", "", models.PriorityLow, false),
		sortable("late-high", "2024-03-01", models.PriorityHigh, false),
		sortable("early-low", "2024-01-05", models.PriorityLow, false),
		sortable("undated-high", "", models.PriorityHigh, false),
	}

	got := Sort(tasks, SortDefault)
	assertOrder(t, got, "early-low", "late-high", "undated-high", "undated-low", "done")
}

func TestSortDefaultPriorityBreaksDueDateTie(t *testing.T) {
	tasks := []models.Task{
		sortable("low", "2024-02-01", models.PriorityLow, false),
		sortable("highest", "2024-02-01", models.PriorityHighest, false),
	}
	got := Sort(tasks, SortDefault)
	assertOrder(t, got, "highest", "low")
}

func TestSortDueDate(t *testing.T) {
	tasks := []models.Task{
		sortable("undated", "", models.PriorityMedium, false),
		sortable("march", "2024-03-15", models.PriorityMedium, false),
		sortable("january", "2024-01-15", models.PriorityMedium, false),
	}
	got := Sort(tasks, SortDueDate)
	assertOrder(t, got, "january", "march", "undated")
}

func TestSortPriority(t *testing.T) {
	tasks := []models.Task{
		sortable("medium", "", models.PriorityMedium, false),
		sortable("highest", "", models.PriorityHighest, false),
		sortable("lowest", "", models.PriorityLowest, false),
	}
	got := Sort(tasks, SortPriority)
	assertOrder(t, got, "highest", "medium", "lowest")
}

func TestSortPriorityUnknownRanksLast(t *testing.T) {
	tasks := []models.Task{
		sortable("corrupt", "", models.TaskPriority("Bananas"), false),
		sortable("lowest", "", models.PriorityLowest, false),
	}
	got := Sort(tasks, SortPriority)
	assertOrder(t, got, "lowest", "corrupt")
}

func TestSortCreated(t *testing.T) {
	old := sortable("old", "", models.PriorityMedium, false)
	old.CreatedAt = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local)
	recent := sortable("recent", "", models.PriorityMedium, false)
	recent.CreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)

	got := Sort([]models.Task{old, recent}, SortCreated)
	assertOrder(t, got, "recent", "old")
}

func TestSortCategory(t *testing.T) {
	a := sortable("errands", "", models.PriorityMedium, false)
	a.Category = "Errands"
	b := sortable("work", "", models.PriorityMedium, false)
	b.Category = "Work"
	c := sortable("health", "", models.PriorityMedium, false)
	c.Category = "Health"

	got := Sort([]models.Task{b, a, c}, SortCategory)
	assertOrder(t, got, "errands", "health", "work")
}

func TestSortIsStable(t *testing.T) {
	first := sortable("first", "2024-02-01", models.PriorityMedium, false)
	second := sortable("second", "2024-02-01", models.PriorityMedium, false)

	got := Sort([]models.Task{first, second}, SortDueDate)
	assertOrder(t, got, "first", "second")
}

func TestSortDoesNotMutateInput(t *testing.T) {
	tasks := []models.Task{
		sortable("b", "2024-03-01", models.PriorityMedium, false),
		sortable("a", "2024-01-01", models.PriorityMedium, false),
	}
	_ = Sort(tasks, SortDueDate)
	if tasks[0].Title != "b" || tasks[1].Title != "a" {
		t.Errorf("Sort mutated its input: %v", titles(tasks))
	}
}

func TestSortUnknownKeyFallsBackToDefault(t *testing.T) {
	tasks := []models.Task{
		sortable("done", "", models.PriorityMedium, true),
		sortable("open", "", models.PriorityMedium, false),
	}
	got := Sort(tasks, SortKey("bogus"))
	assertOrder(t, got, "open", "done")
}

func TestValidSortKey(t *testing.T) {
	for _, k := range SortKeys {
		if !ValidSortKey(k) {
			t.Errorf("ValidSortKey(%s) = false, want true", k)
		}
	}
	if ValidSortKey(SortKey("bogus")) {
		t.Error("ValidSortKey(bogus) = true, want false")
	}
}
