// Package recur derives successor tasks for recurring tasks.
package recur

import (
	"time"

	"github.com/google/uuid"

	"github.com/plemaire/taskdeck/internal/clock"
	"github.com/plemaire/taskdeck/models"
)

// OnCompleted returns the successor spawned by completing task, or nil when
// the task is not recurring or has no due date. It is meant to be invoked
// only on the incomplete -> complete transition.
//
// The successor is a clone with a fresh id, fresh timestamps, completion
// cleared, and the due date advanced by one recurrence period. Monthly
// recurrence preserves the day-of-month, clamping to the target month's last
// valid day when it is shorter. The original task is not modified.
func OnCompleted(task models.Task, now time.Time) *models.Task {
	if task.Recurrence == models.RecurrenceNone {
		return nil
	}
	due, ok := clock.ParseDueDate(task.DueDate)
	if !ok {
		return nil
	}

	var next time.Time
	switch task.Recurrence {
	case models.RecurrenceDaily:
		next = clock.AddDays(due, 1)
	case models.RecurrenceWeekly:
		next = clock.AddDays(due, 7)
	case models.RecurrenceMonthly:
		next = clock.AddMonths(due, 1)
	default:
		return nil
	}

	successor := task
	successor.ID = uuid.NewString()
	successor.DueDate = clock.FormatDueDate(next)
	successor.Completed = false
	successor.CreatedAt = now
	successor.ModifiedAt = now
	return &successor
}
