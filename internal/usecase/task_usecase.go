package usecase

import (
	"context"
	"fmt"

	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/ports"
	"github.com/taskboard/taskboard/internal/service/logger"
)

// RequestMeta carries request metadata recorded alongside audit entries.
type RequestMeta struct {
	OriginIP string
}

// CreateTaskRequest represents the form input for creating a task
type CreateTaskRequest struct {
	Title       string
	Description string
	DueDate     string
}

// UpdateTaskRequest represents the form input for updating a task. Update
// replaces fields wholesale: omitted optional fields clear previous values.
type UpdateTaskRequest struct {
	ID          string
	Title       string
	Description string
	Status      string
	DueDate     string
}

// DeleteTaskRequest represents the form input for deleting a task. Title and
// Status are legacy parameters: they are never checked against the stored
// task, only echoed into the audit details.
type DeleteTaskRequest struct {
	ID     string
	Title  string
	Status string
}

// TaskListResponse is what the task list view renders
type TaskListResponse struct {
	Tasks    []*domain.Task
	Username string
}

// TaskUseCase orchestrates the task request flow: it resolves the
// authenticated principal, checks ownership, delegates to the task store,
// and mirrors every accepted mutation to the audit store and the audit log
// channel. Authorization failures are recorded on the technical channel
// only, never in the persisted audit trail.
type TaskUseCase struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	audits ports.AuditRepository
	log    logger.Logger
	audit  logger.Logger
}

// NewTaskUseCase creates a new task use case. techLog and auditLog are the
// injected technical and audit log channels.
func NewTaskUseCase(
	users ports.UserRepository,
	tasks ports.TaskRepository,
	audits ports.AuditRepository,
	techLog logger.Logger,
	auditLog logger.Logger,
) *TaskUseCase {
	return &TaskUseCase{
		users:  users,
		tasks:  tasks,
		audits: audits,
		log:    techLog,
		audit:  auditLog,
	}
}

// ListTasks returns the tasks owned by the principal, in creation order.
func (uc *TaskUseCase) ListTasks(ctx context.Context, principal string) (*TaskListResponse, error) {
	user, err := uc.resolveUser(ctx, principal)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.tasks.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	uc.log.Info(ctx, "Displaying task list", map[string]interface{}{
		"user":  user.Username,
		"count": len(tasks),
	})

	return &TaskListResponse{
		Tasks:    tasks,
		Username: user.Username,
	}, nil
}

// CreateTask creates a task owned by the principal and records the action.
// Side effect order: task store write, then audit store append, then the
// log channels. The writes are not transactionally linked.
func (uc *TaskUseCase) CreateTask(ctx context.Context, principal string, req CreateTaskRequest, meta RequestMeta) error {
	user, err := uc.resolveUser(ctx, principal)
	if err != nil {
		return err
	}

	dueDate, err := domain.ParseDueDate(req.DueDate)
	if err != nil {
		return err
	}

	task := domain.NewTask(req.Title, req.Description, dueDate, user.ID)
	if err := uc.tasks.Create(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := uc.appendAudit(ctx, user.Username, domain.AuditActionCreateTask,
		fmt.Sprintf("Created task: %s", req.Title), meta); err != nil {
		return err
	}

	uc.audit.Info(ctx, string(domain.AuditActionCreateTask), map[string]interface{}{
		"user":     user.Username,
		"task_id":  task.ID,
		"title":    req.Title,
		"due_date": req.DueDate,
	})
	uc.log.Info(ctx, "Task created", map[string]interface{}{
		"user":    user.Username,
		"task_id": task.ID,
		"title":   req.Title,
	})

	return nil
}

// UpdateTask replaces every field of the task with the given values, if the
// task exists and the principal owns it. An absent task is a silent no-op.
// An ownership mismatch is rejected without mutation and recorded only on
// the technical channel.
func (uc *TaskUseCase) UpdateTask(ctx context.Context, principal string, req UpdateTaskRequest, meta RequestMeta) error {
	user, err := uc.resolveUser(ctx, principal)
	if err != nil {
		return err
	}

	task, err := uc.tasks.FindByID(ctx, req.ID)
	if err != nil {
		if err == ports.ErrTaskNotFound {
			return nil
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.OwnerID != user.ID {
		uc.log.Warn(ctx, "Unauthorized task update attempt", map[string]interface{}{
			"user":    user.Username,
			"task_id": req.ID,
		})
		return nil
	}

	status, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		return err
	}
	dueDate, err := domain.ParseDueDate(req.DueDate)
	if err != nil {
		return err
	}

	task.Replace(req.Title, req.Description, status, dueDate)
	if err := uc.tasks.Update(ctx, task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	// Details echo the request fields, not the stored entity.
	if err := uc.appendAudit(ctx, user.Username, domain.AuditActionUpdateTask,
		fmt.Sprintf("Updated task #%s (title=%s, status=%s)", req.ID, req.Title, req.Status), meta); err != nil {
		return err
	}

	uc.audit.Info(ctx, string(domain.AuditActionUpdateTask), map[string]interface{}{
		"user":     user.Username,
		"task_id":  req.ID,
		"title":    req.Title,
		"status":   req.Status,
		"due_date": req.DueDate,
	})
	uc.log.Info(ctx, "Task updated", map[string]interface{}{
		"user":    user.Username,
		"task_id": req.ID,
	})

	return nil
}

// DeleteTask removes the task if it exists and the principal owns it.
// Anything else is a no-op recorded as a warning on the technical channel.
func (uc *TaskUseCase) DeleteTask(ctx context.Context, principal string, req DeleteTaskRequest, meta RequestMeta) error {
	user, err := uc.resolveUser(ctx, principal)
	if err != nil {
		return err
	}

	task, err := uc.tasks.FindByID(ctx, req.ID)
	if err != nil && err != ports.ErrTaskNotFound {
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task == nil || task.OwnerID != user.ID {
		uc.log.Warn(ctx, "Unauthorized task delete attempt", map[string]interface{}{
			"user":    user.Username,
			"task_id": req.ID,
		})
		return nil
	}

	if err := uc.tasks.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if err := uc.appendAudit(ctx, user.Username, domain.AuditActionDeleteTask,
		fmt.Sprintf("Deleted task #%s (title=%s, status=%s)", req.ID, req.Title, req.Status), meta); err != nil {
		return err
	}

	uc.audit.Info(ctx, string(domain.AuditActionDeleteTask), map[string]interface{}{
		"user":    user.Username,
		"task_id": req.ID,
		"title":   req.Title,
		"status":  req.Status,
	})
	uc.log.Info(ctx, "Task deleted", map[string]interface{}{
		"user":    user.Username,
		"task_id": req.ID,
	})

	return nil
}

// resolveUser maps the authenticated principal to its user record. The auth
// collaborator guarantees the principal exists, so absence is an
// unrecoverable precondition violation and propagates as a plain error.
func (uc *TaskUseCase) resolveUser(ctx context.Context, principal string) (*domain.User, error) {
	user, err := uc.users.FindByUsername(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve principal %q: %w", principal, err)
	}
	return user, nil
}

func (uc *TaskUseCase) appendAudit(ctx context.Context, username string, action domain.AuditAction, details string, meta RequestMeta) error {
	entry := &domain.AuditEntry{
		Username: username,
		Action:   action,
		Details:  details,
		OriginIP: meta.OriginIP,
	}
	if err := uc.audits.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
