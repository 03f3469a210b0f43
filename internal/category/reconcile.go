// Package category maintains referential integrity between tasks and
// categories: at least one category always exists, and every task references
// a category that exists, falling back to the reserved "Uncategorized"
// entry when it does not.
package category

import (
	"strings"
	"time"

	"github.com/plemaire/taskdeck/models"
)

// Reconcile repairs categories and tasks in place and returns the corrected
// collections. An empty category list becomes [fallback]; any task whose
// category is missing or unknown is reassigned to the fallback (created on
// demand) with its ModifiedAt stamped. The returned bool reports whether
// anything changed.
func Reconcile(categories []string, tasks []models.Task, now time.Time) ([]string, []models.Task, bool) {
	touched := false

	if len(categories) == 0 {
		categories = []string{models.FallbackCategory}
		touched = true
	}

	for i := range tasks {
		if tasks[i].Category != "" && models.ContainsCategory(categories, tasks[i].Category) {
			continue
		}
		if !models.ContainsCategory(categories, models.FallbackCategory) {
			categories = append(categories, models.FallbackCategory)
		}
		tasks[i].Category = models.FallbackCategory
		tasks[i].ModifiedAt = now
		touched = true
	}

	return categories, tasks, touched
}

// Create appends a new category. It returns the unchanged list and false
// when the trimmed name is empty or a category with the same name already
// exists case-insensitively.
func Create(categories []string, name string) ([]string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return categories, false
	}
	if models.ContainsCategoryFold(categories, name) {
		return categories, false
	}
	return append(categories, name), true
}

// DeleteResult describes the outcome of a category deletion.
type DeleteResult struct {
	Categories []string
	Tasks      []models.Task
	// Reassigned is the number of tasks moved to the fallback category.
	Reassigned int
	// ClearSelection is true when the deleted category was the active
	// selection filter and the caller must clear it.
	ClearSelection bool
}

// Delete removes a category, reassigning its tasks to the fallback category
// (created if absent). Deleting the last remaining category is blocked: the
// second return value is false and nothing changes. Deleting an unknown
// name succeeds as a no-op on tasks.
func Delete(categories []string, tasks []models.Task, name, selected string, now time.Time) (DeleteResult, bool) {
	if len(categories) <= 1 {
		return DeleteResult{Categories: categories, Tasks: tasks}, false
	}

	kept := make([]string, 0, len(categories))
	for _, c := range categories {
		if c != name {
			kept = append(kept, c)
		}
	}

	res := DeleteResult{Categories: kept, Tasks: tasks}
	for i := range tasks {
		if tasks[i].Category != name {
			continue
		}
		if !models.ContainsCategory(res.Categories, models.FallbackCategory) {
			res.Categories = append(res.Categories, models.FallbackCategory)
		}
		tasks[i].Category = models.FallbackCategory
		tasks[i].ModifiedAt = now
		res.Reassigned++
	}

	if selected == name {
		res.ClearSelection = true
	}
	return res, true
}
