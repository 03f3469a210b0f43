package models

import "strings"

// FallbackCategory is the reserved category used to repair integrity
// violations. It always exists whenever any task needs it.
const FallbackCategory = "Uncategorized"

// DefaultCategories seed a fresh snapshot.
var DefaultCategories = []string{"Work", "Personal", "Errands", "Health"}

// Category is a user-defined grouping label. Names are unique
// case-insensitively.
type Category = string

// CategoryOrFallback returns the task's category, substituting the fallback
// when it is empty.
func CategoryOrFallback(c string) string {
	if c == "" {
		return FallbackCategory
	}
	return c
}

// ContainsCategory reports whether name is present in categories
// (exact match; reconciliation keeps names canonical).
func ContainsCategory(categories []string, name string) bool {
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}

// ContainsCategoryFold reports whether name matches any category
// case-insensitively. Used to reject duplicate creations.
func ContainsCategoryFold(categories []string, name string) bool {
	for _, c := range categories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
