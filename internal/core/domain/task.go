package domain

import (
	"strings"
	"time"
)

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

const DefaultTaskCategory = "Personal"

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description *string
	Completed   bool
	Priority    TaskPriority
	Category    string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue reports whether the task is still open past its due date.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Priority    TaskPriority
	Category    string
	DueDate     *time.Time
}

// Normalize fills the defaults a new task gets when the caller leaves them out.
func (in CreateTaskInput) Normalize() CreateTaskInput {
	in.Title = strings.TrimSpace(in.Title)
	if in.Priority == "" {
		in.Priority = TaskPriorityMedium
	}
	if strings.TrimSpace(in.Category) == "" {
		in.Category = DefaultTaskCategory
	}
	return in
}

// UpdateTaskInput is a field patch. Pointer fields are applied when non-nil;
// the *Set flags allow clearing nullable fields.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Completed      *bool
	Priority       *TaskPriority
	Category       *string
	DueDate        *time.Time
	DueDateSet     bool
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil &&
		!in.DescriptionSet &&
		in.Completed == nil &&
		in.Priority == nil &&
		in.Category == nil &&
		!in.DueDateSet
}

// Apply merges the patch into t. UpdatedAt is left to the caller.
func (in UpdateTaskInput) Apply(t *Task) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.DescriptionSet {
		t.Description = in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.DueDateSet {
		t.DueDate = in.DueDate
	}
}
