package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TaskStatus represents the working state of an incomplete task.
// Completion is tracked separately on Task.Completed; a completed task
// always carries StatusTodo and an empty WaitingFor.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusWaiting    TaskStatus = "waiting"
)

// StatusLabels maps statuses to their display labels.
var StatusLabels = map[TaskStatus]string{
	StatusTodo:       "To do",
	StatusInProgress: "In progress",
	StatusWaiting:    "Waiting",
}

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLowest  TaskPriority = "Lowest"
	PriorityLow     TaskPriority = "Low"
	PriorityMedium  TaskPriority = "Medium"
	PriorityHigh    TaskPriority = "High"
	PriorityHighest TaskPriority = "Highest"
)

// priorityRank orders the five priority levels for sorting and tie-breaks.
var priorityRank = map[TaskPriority]int{
	PriorityHighest: 5,
	PriorityHigh:    4,
	PriorityMedium:  3,
	PriorityLow:     2,
	PriorityLowest:  1,
}

// Rank returns the numeric rank of a priority (Highest=5 .. Lowest=1).
// Unknown values rank 0 so comparisons never fail on bad data.
func (p TaskPriority) Rank() int {
	return priorityRank[p]
}

// Recurrence is the period after which a completed task spawns a successor.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// RecurrenceLabels maps recurrence periods to their display labels.
var RecurrenceLabels = map[Recurrence]string{
	RecurrenceDaily:   "Daily",
	RecurrenceWeekly:  "Weekly",
	RecurrenceMonthly: "Monthly",
}

// Subtask is a checklist entry owned by a task.
type Subtask struct {
	ID        string `json:"id" yaml:"id" toml:"id" validate:"required"`
	Text      string `json:"text" yaml:"text" toml:"text" validate:"required"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
}

// Task represents a single tracked task.
//
// DueDate is a calendar date ("YYYY-MM-DD") with no time component; an empty
// string means no due date. Recurrence is only actionable when DueDate is set.
type Task struct {
	ID         string       `json:"id" yaml:"id" toml:"id" validate:"required,uuid4"`
	Title      string       `json:"title" yaml:"title" toml:"title" validate:"required"`
	Priority   TaskPriority `json:"priority" yaml:"priority" toml:"priority" validate:"required,oneof=Lowest Low Medium High Highest"`
	Category   string       `json:"category" yaml:"category" toml:"category" validate:"required"`
	DueDate    string       `json:"dueDate" yaml:"dueDate" toml:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Recurrence Recurrence   `json:"recurrence" yaml:"recurrence" toml:"recurrence" validate:"omitempty,oneof=daily weekly monthly"`
	Tags       []string     `json:"tags" yaml:"tags" toml:"tags"`
	Notes      string       `json:"notes" yaml:"notes" toml:"notes"`
	Links      []string     `json:"links" yaml:"links" toml:"links"`
	Subtasks   []Subtask    `json:"subtasks" yaml:"subtasks" toml:"subtasks" validate:"dive"`
	Completed  bool         `json:"completed" yaml:"completed" toml:"completed"`
	Status     TaskStatus   `json:"status" yaml:"status" toml:"status" validate:"required,oneof=todo in_progress waiting"`
	WaitingFor string       `json:"waitingFor" yaml:"waitingFor" toml:"waitingFor"`
	CreatedAt  time.Time    `json:"createdAt" yaml:"createdAt" toml:"createdAt" validate:"required"`
	ModifiedAt time.Time    `json:"modifiedAt" yaml:"modifiedAt" toml:"modifiedAt" validate:"required"`
}

// HasDueDate reports whether the task carries a due date.
func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}

// SubtaskProgress returns the completed and total subtask counts.
func (t Task) SubtaskProgress() (done, total int) {
	for _, st := range t.Subtasks {
		if st.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// Normalize repairs fields a loosely validated snapshot may have dropped:
// missing status becomes todo, WaitingFor is cleared unless the task is
// waiting, and completion clears in-progress/waiting state. It reports
// whether anything changed.
func (t *Task) Normalize() bool {
	touched := false
	if t.Status != StatusTodo && t.Status != StatusInProgress && t.Status != StatusWaiting {
		t.Status = StatusTodo
		touched = true
	}
	if t.Completed && (t.Status != StatusTodo || t.WaitingFor != "") {
		t.Status = StatusTodo
		t.WaitingFor = ""
		touched = true
	}
	if t.Status != StatusWaiting && t.WaitingFor != "" {
		t.WaitingFor = ""
		touched = true
	}
	if t.Tags == nil {
		t.Tags = []string{}
		touched = true
	}
	if t.Links == nil {
		t.Links = []string{}
		touched = true
	}
	if t.Subtasks == nil {
		t.Subtasks = []Subtask{}
		touched = true
	}
	return touched
}

// NewTask creates a task with a fresh id and timestamps set to now.
func NewTask(title, category string, now time.Time) Task {
	return Task{
		ID:         uuid.NewString(),
		Title:      title,
		Priority:   PriorityMedium,
		Category:   category,
		Status:     StatusTodo,
		Tags:       []string{},
		Links:      []string{},
		Subtasks:   []Subtask{},
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// NewSubtask creates a subtask with a fresh id.
func NewSubtask(text string) Subtask {
	return Subtask{ID: uuid.NewString(), Text: text}
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		// Safeguard for tests running in isolation.
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
