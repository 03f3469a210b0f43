package views

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/plemaire/taskdeck/internal/clock"
	"github.com/plemaire/taskdeck/models"
)

// SortKey selects the ordering applied to a visible task list.
type SortKey string

const (
	SortDefault  SortKey = "default"
	SortDueDate  SortKey = "dueDate"
	SortPriority SortKey = "priority"
	SortCreated  SortKey = "created"
	SortCategory SortKey = "category"
)

// SortKeys lists the selectable sort keys in display order.
var SortKeys = []SortKey{SortDefault, SortDueDate, SortPriority, SortCreated, SortCategory}

// ValidSortKey reports whether k names a known sort key.
func ValidSortKey(k SortKey) bool {
	for _, s := range SortKeys {
		if s == k {
			return true
		}
	}
	return false
}

// categoryCollator orders category names with proper Unicode collation
// rather than byte comparison.
var categoryCollator = collate.New(language.Und)

// Sort returns a copy of tasks ordered by the given key. The sort is stable:
// tasks comparing equal keep their input order. Unknown keys fall back to
// the default ordering.
func Sort(tasks []models.Task, key SortKey) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)

	var less func(a, b models.Task) bool
	switch key {
	case SortDueDate:
		// Undated tasks sort after all dated ones.
		less = func(a, b models.Task) bool {
			ad, aok := clock.ParseDueDate(a.DueDate)
			bd, bok := clock.ParseDueDate(b.DueDate)
			if aok != bok {
				return aok
			}
			if !aok {
				return false
			}
			return ad.Before(bd)
		}
	case SortPriority:
		less = func(a, b models.Task) bool {
			return a.Priority.Rank() > b.Priority.Rank()
		}
	case SortCreated:
		// Newest first.
		less = func(a, b models.Task) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}
	case SortCategory:
		less = func(a, b models.Task) bool {
			return categoryCollator.CompareString(a.Category, b.Category) < 0
		}
	default:
		less = defaultLess
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// defaultLess orders incomplete before completed, dated before undated,
// ascending due date, then descending priority rank.
func defaultLess(a, b models.Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	ad, aok := clock.ParseDueDate(a.DueDate)
	bd, bok := clock.ParseDueDate(b.DueDate)
	if aok != bok {
		return aok
	}
	if aok && bok && !ad.Equal(bd) {
		return ad.Before(bd)
	}
	return a.Priority.Rank() > b.Priority.Rank()
}
