package models

import (
	"testing"
	"time"
)

var now = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.Local)

func TestNewTask(t *testing.T) {
	task := NewTask("Write minutes", "Work", now)

	if task.ID == "" {
		t.Error("new task must carry an id")
	}
	if task.Priority != PriorityMedium {
		t.Errorf("priority = %q, want the medium default", task.Priority)
	}
	if task.Status != StatusTodo {
		t.Errorf("status = %q, want todo", task.Status)
	}
	if task.Tags == nil || task.Links == nil || task.Subtasks == nil {
		t.Error("collections must start non-nil")
	}
	if !task.CreatedAt.Equal(now) || !task.ModifiedAt.Equal(now) {
		t.Errorf("timestamps = %v/%v, want %v", task.CreatedAt, task.ModifiedAt, now)
	}
	if err := ValidateStruct(task); err != nil {
		t.Errorf("fresh task fails validation: %v", err)
	}
}

func TestPriorityRank(t *testing.T) {
	tests := []struct {
		priority TaskPriority
		want     int
	}{
		{PriorityHighest, 5},
		{PriorityHigh, 4},
		{PriorityMedium, 3},
		{PriorityLow, 2},
		{PriorityLowest, 1},
		{TaskPriority("Bananas"), 0},
		{TaskPriority(""), 0},
	}
	for _, tt := range tests {
		if got := tt.priority.Rank(); got != tt.want {
			t.Errorf("Rank(%q) = %d, want %d", tt.priority, got, tt.want)
		}
	}
}

func TestHasDueDate(t *testing.T) {
	task := NewTask("x", "Work", now)
	if task.HasDueDate() {
		t.Error("fresh task should have no due date")
	}
	task.DueDate = "2024-06-15"
	if !task.HasDueDate() {
		t.Error("expected HasDueDate after setting one")
	}
}

func TestSubtaskProgress(t *testing.T) {
	task := NewTask("x", "Work", now)
	if done, total := task.SubtaskProgress(); done != 0 || total != 0 {
		t.Errorf("progress = %d/%d, want 0/0", done, total)
	}

	task.Subtasks = []Subtask{
		{ID: "1", Text: "a", Completed: true},
		{ID: "2", Text: "b"},
		{ID: "3", Text: "c", Completed: true},
	}
	if done, total := task.SubtaskProgress(); done != 2 || total != 3 {
		t.Errorf("progress = %d/%d, want 2/3", done, total)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Task)
		check   func(*testing.T, Task)
		touched bool
	}{
		{
			name:    "clean task untouched",
			mutate:  func(t *Task) {},
			check:   func(t *testing.T, task Task) {},
			touched: false,
		},
		{
			name:   "unknown status becomes todo",
			mutate: func(task *Task) { task.Status = TaskStatus("paused") },
			check: func(t *testing.T, task Task) {
				if task.Status != StatusTodo {
					t.Errorf("status = %q, want todo", task.Status)
				}
			},
			touched: true,
		},
		{
			name: "completed clears waiting state",
			mutate: func(task *Task) {
				task.Completed = true
				task.Status = StatusWaiting
				task.WaitingFor = "vendor"
			},
			check: func(t *testing.T, task Task) {
				if task.Status != StatusTodo || task.WaitingFor != "" {
					t.Errorf("got %q/%q, want todo with no waitingFor", task.Status, task.WaitingFor)
				}
			},
			touched: true,
		},
		{
			name: "waitingFor cleared when not waiting",
			mutate: func(task *Task) {
				task.Status = StatusInProgress
				task.WaitingFor = "vendor"
			},
			check: func(t *testing.T, task Task) {
				if task.WaitingFor != "" {
					t.Errorf("waitingFor = %q, want cleared", task.WaitingFor)
				}
			},
			touched: true,
		},
		{
			name: "nil collections replaced",
			mutate: func(task *Task) {
				task.Tags = nil
				task.Links = nil
				task.Subtasks = nil
			},
			check: func(t *testing.T, task Task) {
				if task.Tags == nil || task.Links == nil || task.Subtasks == nil {
					t.Error("collections still nil after Normalize")
				}
			},
			touched: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewTask("x", "Work", now)
			tt.mutate(&task)
			if got := task.Normalize(); got != tt.touched {
				t.Errorf("Normalize() = %v, want %v", got, tt.touched)
			}
			tt.check(t, task)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	task := NewTask("x", "Work", now)
	task.Status = TaskStatus("junk")
	task.Completed = true
	task.WaitingFor = "someone"
	task.Tags = nil

	task.Normalize()
	if task.Normalize() {
		t.Error("second Normalize() found more to repair")
	}
}

func TestValidateStruct(t *testing.T) {
	valid := NewTask("ok", "Work", now)

	tests := []struct {
		name   string
		mutate func(*Task)
		wantOK bool
	}{
		{"valid task", func(t *Task) {}, true},
		{"valid due date", func(t *Task) { t.DueDate = "2024-12-31" }, true},
		{"valid recurrence", func(t *Task) { t.Recurrence = RecurrenceMonthly }, true},
		{"missing title", func(t *Task) { t.Title = "" }, false},
		{"missing category", func(t *Task) { t.Category = "" }, false},
		{"bad id", func(t *Task) { t.ID = "not-a-uuid" }, false},
		{"bad priority", func(t *Task) { t.Priority = "Urgent" }, false},
		{"bad due date", func(t *Task) { t.DueDate = "12/31/2024" }, false},
		{"bad recurrence", func(t *Task) { t.Recurrence = "yearly" }, false},
		{"bad status", func(t *Task) { t.Status = "paused" }, false},
		{"subtask without text", func(t *Task) { t.Subtasks = []Subtask{{ID: "x"}} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid
			tt.mutate(&task)
			err := ValidateStruct(task)
			if (err == nil) != tt.wantOK {
				t.Errorf("ValidateStruct() err = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}
