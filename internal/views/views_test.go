package views

import (
	"testing"
	"time"

	"github.com/plemaire/taskdeck/models"
)

// today is the fixed reference day used throughout: Monday 2024-06-10.
var today = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local)

func task(due string, completed bool) models.Task {
	return models.Task{
		Title:     "task",
		Category:  "Work",
		DueDate:   due,
		Completed: completed,
		Status:    models.StatusTodo,
	}
}

func TestPasses(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
		view View
		want bool
	}{
		{"all shows open", task("", false), ViewAll, true},
		{"all hides completed", task("", true), ViewAll, false},

		{"today matches same day", task("2024-06-10", false), ViewToday, true},
		{"today rejects tomorrow", task("2024-06-11", false), ViewToday, false},
		{"today rejects undated", task("", false), ViewToday, false},
		{"today hides completed", task("2024-06-10", true), ViewToday, false},

		{"week includes today", task("2024-06-10", false), ViewWeek, true},
		{"week includes day seven", task("2024-06-17", false), ViewWeek, true},
		{"week excludes day eight", task("2024-06-18", false), ViewWeek, false},
		{"week excludes yesterday", task("2024-06-09", false), ViewWeek, false},

		{"overdue is strictly before today", task("2024-06-09", false), ViewOverdue, true},
		{"due today is not overdue", task("2024-06-10", false), ViewOverdue, false},
		{"completed is never overdue", task("2024-06-01", true), ViewOverdue, false},
		{"undated is never overdue", task("", false), ViewOverdue, false},

		{"nodate matches undated", task("", false), ViewNoDate, true},
		{"nodate rejects dated", task("2024-06-10", false), ViewNoDate, false},
		{"nodate hides completed", task("", true), ViewNoDate, false},

		{"completed shows completed", task("", true), ViewCompleted, true},
		{"completed hides open", task("2024-06-10", false), ViewCompleted, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Passes(tt.task, tt.view, today); got != tt.want {
				t.Errorf("Passes(due=%q completed=%v, %s) = %v, want %v",
					tt.task.DueDate, tt.task.Completed, tt.view, got, tt.want)
			}
		})
	}
}

func TestPassesMalformedDueDate(t *testing.T) {
	// A corrupt due date must not crash filtering; the task simply drops out
	// of every date-driven view.
	bad := task("junk", false)
	for _, v := range []View{ViewToday, ViewWeek, ViewOverdue} {
		if Passes(bad, v, today) {
			t.Errorf("task with malformed due date unexpectedly passes %s", v)
		}
	}
	if !Passes(bad, ViewAll, today) {
		t.Error("task with malformed due date should still pass the all view")
	}
	// HasDueDate is a string check, so a malformed date keeps it out of nodate.
	if Passes(bad, ViewNoDate, today) {
		t.Error("task with a non-empty due date string should not pass nodate")
	}
}

func TestMatchesCategory(t *testing.T) {
	work := task("", false)
	orphan := task("", false)
	orphan.Category = ""

	tests := []struct {
		name     string
		task     models.Task
		selected string
		want     bool
	}{
		{"no selection passes", work, "", true},
		{"matching selection", work, "Work", true},
		{"other selection", work, "Personal", false},
		{"empty category counts as fallback", orphan, models.FallbackCategory, true},
		{"empty category fails other selections", orphan, "Work", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesCategory(tt.task, tt.selected); got != tt.want {
				t.Errorf("MatchesCategory(category=%q, %q) = %v, want %v",
					tt.task.Category, tt.selected, got, tt.want)
			}
		})
	}
}

func TestMatchesSearch(t *testing.T) {
	subject := models.Task{
		Title:      "Finalize monthly REPORT",
		Notes:      "verify the numbers",
		Category:   "Work",
		WaitingFor: "Reply from Anna",
		Tags:       []string{"urgent", "finance"},
	}

	tests := []struct {
		name string
		term string
		want bool
	}{
		{"empty term matches", "", true},
		{"whitespace-only term matches", "   ", true},
		{"title substring, case-insensitive", "report", true},
		{"notes substring", "numbers", true},
		{"category substring", "wor", true},
		{"waiting-for substring", "anna", true},
		{"tag substring", "FIN", true},
		{"term with surrounding whitespace", "  urgent  ", true},
		{"no match", "absent", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesSearch(subject, tt.term); got != tt.want {
				t.Errorf("MatchesSearch(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestVisibleComposesFilters(t *testing.T) {
	a := task("2024-06-10", false)
	a.Title = "alpha"
	b := task("2024-06-10", false)
	b.Title = "beta"
	b.Category = "Personal"
	c := task("2024-06-12", false)
	c.Title = "alpha later"

	got := Visible([]models.Task{a, b, c}, ViewToday, "Work", "alpha", today)
	if len(got) != 1 || got[0].Title != "alpha" {
		t.Fatalf("Visible = %+v, want only the alpha task", got)
	}
}

func TestVisiblePreservesInputOrder(t *testing.T) {
	first := task("", false)
	first.Title = "first"
	second := task("", false)
	second.Title = "second"

	got := Visible([]models.Task{first, second}, ViewAll, "", "", today)
	if len(got) != 2 || got[0].Title != "first" || got[1].Title != "second" {
		t.Fatalf("Visible reordered its input: %+v", got)
	}
}

func TestCounts(t *testing.T) {
	tasks := []models.Task{
		task("2024-06-10", false), // today, week, all
		task("2024-06-09", false), // overdue, all
		task("", false),           // nodate, all
		task("2024-06-10", true),  // completed only
	}

	counts := Counts(tasks, today)
	want := map[View]int{
		ViewAll:       3,
		ViewToday:     1,
		ViewWeek:      1,
		ViewOverdue:   1,
		ViewNoDate:    1,
		ViewCompleted: 1,
	}
	for v, n := range want {
		if counts[v] != n {
			t.Errorf("Counts[%s] = %d, want %d", v, counts[v], n)
		}
	}
}

func TestCountsZeroFilled(t *testing.T) {
	counts := Counts(nil, today)
	for _, v := range Order {
		if n, ok := counts[v]; !ok || n != 0 {
			t.Errorf("Counts[%s] = %d (present=%v), want explicit zero", v, n, ok)
		}
	}
}

func TestCategoryCounts(t *testing.T) {
	work := task("", false)
	done := task("", true)
	stray := task("", false)
	stray.Category = "Ghost"

	counts := CategoryCounts([]string{"Work", "Personal", models.FallbackCategory},
		[]models.Task{work, done, stray})

	if counts["Work"] != 1 {
		t.Errorf("Work count = %d, want 1 (completed tasks excluded)", counts["Work"])
	}
	if counts["Personal"] != 0 {
		t.Errorf("Personal count = %d, want explicit 0", counts["Personal"])
	}
	if counts[models.FallbackCategory] != 1 {
		t.Errorf("fallback count = %d, want 1 for the unknown-category task", counts[models.FallbackCategory])
	}
}

func TestValid(t *testing.T) {
	for _, v := range Order {
		if !Valid(v) {
			t.Errorf("Valid(%s) = false, want true", v)
		}
	}
	if Valid(View("bogus")) {
		t.Error("Valid(bogus) = true, want false")
	}
}
