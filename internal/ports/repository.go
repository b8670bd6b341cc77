package ports

import (
	"context"
	"errors"

	"github.com/taskboard/taskboard/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrTaskNotFound = errors.New("task not found")
)

// UserRepository defines the interface for user lookup. Persistence of user
// accounts belongs to an external collaborator; this core only resolves them.
type UserRepository interface {
	// FindByUsername retrieves a user by its unique username.
	// Returns ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TaskRepository defines the interface for task persistence
type TaskRepository interface {
	// Create saves a new task
	Create(ctx context.Context, task *domain.Task) error

	// FindByID retrieves a task by its ID. Returns ErrTaskNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// ListByOwner retrieves all tasks owned by a user, in creation order.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)

	// Update persists the current state of an existing task
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task. Deletion is final; there is no soft delete.
	Delete(ctx context.Context, id string) error
}

// AuditRepository defines the interface for the persisted audit trail.
// Append-only: this core never reads, mutates, or deletes entries.
type AuditRepository interface {
	// Append stores a new audit entry. The store assigns ordering and
	// timestamp and writes them back onto the entry.
	Append(ctx context.Context, entry *domain.AuditEntry) error
}
