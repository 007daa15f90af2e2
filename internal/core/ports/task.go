package ports

import (
	"context"
	"time"

	"taskflow/internal/core/domain"
)

// TaskRepository scopes every query to the owning user. A task owned by
// someone else is reported as domain.ErrTaskNotFound.
type TaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)
	ListCompletedBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Task, error)
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	Update(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput, updatedAt time.Time) (domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

type TaskService interface {
	ListTasks(ctx context.Context, userID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}
