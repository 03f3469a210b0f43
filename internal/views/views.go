// Package views computes the visible task subset for the active view,
// category selection and search term, and orders it per the selected sort
// key. Filtering and sorting are pure: no state, no side effects.
package views

import (
	"strings"
	"time"

	"github.com/plemaire/taskdeck/internal/clock"
	"github.com/plemaire/taskdeck/models"
)

// View is a named predicate selecting tasks by due-date relationship to the
// current date or by completion state.
type View string

const (
	ViewAll       View = "all"
	ViewToday     View = "today"
	ViewWeek      View = "week"
	ViewOverdue   View = "overdue"
	ViewNoDate    View = "nodate"
	ViewCompleted View = "completed"
)

// Order is the display order of the views.
var Order = []View{ViewAll, ViewToday, ViewWeek, ViewOverdue, ViewNoDate, ViewCompleted}

// Titles maps views to their display titles.
var Titles = map[View]string{
	ViewAll:       "All tasks",
	ViewToday:     "Today",
	ViewWeek:      "This week",
	ViewOverdue:   "Overdue",
	ViewNoDate:    "No date",
	ViewCompleted: "Completed",
}

// Valid reports whether v names a known view.
func Valid(v View) bool {
	_, ok := Titles[v]
	return ok
}

// weekSpan is the number of days covered by the week view, inclusive of
// today and of the final day.
const weekSpan = 7

// Passes reports whether the task passes the view predicate for the given
// start-of-day instant.
func Passes(t models.Task, v View, today time.Time) bool {
	switch v {
	case ViewAll:
		return !t.Completed
	case ViewToday:
		due, ok := clock.ParseDueDate(t.DueDate)
		return !t.Completed && ok && clock.SameDay(due, today)
	case ViewWeek:
		due, ok := clock.ParseDueDate(t.DueDate)
		if t.Completed || !ok {
			return false
		}
		weekEnd := clock.AddDays(today, weekSpan)
		return !due.Before(today) && !due.After(weekEnd)
	case ViewOverdue:
		// Strictly before today: a task due today is never overdue.
		due, ok := clock.ParseDueDate(t.DueDate)
		return !t.Completed && ok && due.Before(today)
	case ViewNoDate:
		return !t.Completed && !t.HasDueDate()
	case ViewCompleted:
		return t.Completed
	default:
		return true
	}
}

// MatchesCategory applies the selection filter: an unset selection passes
// everything, otherwise the task's category (or the fallback) must equal it.
func MatchesCategory(t models.Task, selected string) bool {
	if selected == "" {
		return true
	}
	return models.CategoryOrFallback(t.Category) == selected
}

// MatchesSearch reports whether the trimmed, case-insensitive term is a
// substring of the task's title, notes, any tag, category or waiting-for
// text. An empty term matches everything.
func MatchesSearch(t models.Task, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Notes), term) ||
		strings.Contains(strings.ToLower(t.Category), term) ||
		strings.Contains(strings.ToLower(t.WaitingFor), term) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Visible returns the tasks passing the view predicate AND the category
// filter AND the search filter, in input order.
func Visible(tasks []models.Task, v View, selectedCategory, searchTerm string, today time.Time) []models.Task {
	visible := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if Passes(t, v, today) && MatchesCategory(t, selectedCategory) && MatchesSearch(t, searchTerm) {
			visible = append(visible, t)
		}
	}
	return visible
}

// Counts returns, for every view, the number of tasks that would pass its
// predicate. Category selection and search are ignored.
func Counts(tasks []models.Task, today time.Time) map[View]int {
	counts := make(map[View]int, len(Order))
	for _, v := range Order {
		counts[v] = 0
	}
	for _, t := range tasks {
		for _, v := range Order {
			if Passes(t, v, today) {
				counts[v]++
			}
		}
	}
	return counts
}

// CategoryCounts returns the number of open tasks per category, consistent
// with the "all" view. Every known category appears in the result, at zero
// when unused.
func CategoryCounts(categories []string, tasks []models.Task) map[string]int {
	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		counts[c] = 0
	}
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		counts[models.CategoryOrFallback(t.Category)]++
	}
	return counts
}
