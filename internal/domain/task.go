package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// DueDateLayout is the accepted due-date wire format: an ISO-8601 local
// date-time without a timezone offset.
const DueDateLayout = "2006-01-02T15:04:05"

// ParseTaskStatus matches a raw status literal against the enumeration.
// The match is case-sensitive.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch TaskStatus(raw) {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return TaskStatus(raw), nil
	}
	return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", raw)}
}

// ParseDueDate parses an optional due-date string. A blank string means
// "no due date" and yields nil.
func ParseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DueDateLayout, raw)
	if err != nil {
		return nil, &ValidationError{Field: "dueDate", Message: fmt.Sprintf("invalid due date %q, expected format %s", raw, DueDateLayout)}
	}
	return &t, nil
}

// Task represents a to-do item owned by a single user. The owner is set at
// creation and never reassigned.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	OwnerID     string     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new task owned by the given user, in the default status.
func NewTask(title, description string, dueDate *time.Time, ownerID string) *Task {
	now := time.Now()
	return &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      TaskStatusTodo,
		DueDate:     dueDate,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Replace overwrites every mutable field with the given values. Omitted
// optional fields clear the previous values; there is no partial-patch
// semantics.
func (t *Task) Replace(title, description string, status TaskStatus, dueDate *time.Time) {
	t.Title = title
	t.Description = description
	t.Status = status
	t.DueDate = dueDate
	t.UpdatedAt = time.Now()
}
