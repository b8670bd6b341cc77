package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseTaskStatus(t *testing.T) {
	for _, valid := range []string{"TODO", "IN_PROGRESS", "DONE"} {
		status, err := ParseTaskStatus(valid)
		if err != nil {
			t.Errorf("Unexpected error for %s: %v", valid, err)
		}
		if string(status) != valid {
			t.Errorf("Expected status %s, got %s", valid, status)
		}
	}

	// The match is case-sensitive
	for _, invalid := range []string{"", "todo", "Done", "OPEN"} {
		_, err := ParseTaskStatus(invalid)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("Expected ValidationError for %q, got %v", invalid, err)
		}
	}
}

func TestParseDueDate(t *testing.T) {
	t.Run("blank means no due date", func(t *testing.T) {
		due, err := ParseDueDate("")
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		if due != nil {
			t.Errorf("Expected nil due date, got %v", due)
		}
	})

	t.Run("valid local date-time", func(t *testing.T) {
		due, err := ParseDueDate("2025-06-01T10:00:00")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		expected := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		if due == nil || !due.Equal(expected) {
			t.Errorf("Expected %v, got %v", expected, due)
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := ParseDueDate("01/06/2025 10:00")
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("Expected ValidationError, got %v", err)
		}
	})
}

func TestNewTask(t *testing.T) {
	task := NewTask("Buy milk", "2 liters", nil, "owner-1")

	if task.ID == "" {
		t.Error("Expected a generated task ID")
	}
	if task.Title != "Buy milk" {
		t.Errorf("Expected title 'Buy milk', got %s", task.Title)
	}
	if task.Status != TaskStatusTodo {
		t.Errorf("Expected default status %s, got %s", TaskStatusTodo, task.Status)
	}
	if task.OwnerID != "owner-1" {
		t.Errorf("Expected owner 'owner-1', got %s", task.OwnerID)
	}
	if task.DueDate != nil {
		t.Errorf("Expected no due date, got %v", task.DueDate)
	}
}

func TestTask_Replace(t *testing.T) {
	due := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	task := NewTask("Buy milk", "2 liters", &due, "owner-1")

	task.Replace("Buy bread", "", TaskStatusDone, nil)

	if task.Title != "Buy bread" {
		t.Errorf("Expected title 'Buy bread', got %s", task.Title)
	}
	// Full-replace semantics: omitted optional fields clear previous values
	if task.Description != "" {
		t.Errorf("Expected description cleared, got %q", task.Description)
	}
	if task.DueDate != nil {
		t.Errorf("Expected due date cleared, got %v", task.DueDate)
	}
	if task.Status != TaskStatusDone {
		t.Errorf("Expected status DONE, got %s", task.Status)
	}
	if task.OwnerID != "owner-1" {
		t.Errorf("Owner must never change, got %s", task.OwnerID)
	}
}
