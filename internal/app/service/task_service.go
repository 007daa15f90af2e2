package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	now            ports.Clock
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository, now: utcNow}
}

// WithClock replaces the timestamp source.
func (s *TaskService) WithClock(now ports.Clock) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.taskRepository.ListByUser(ctx, userID)
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error) {
	input = input.Normalize()
	if input.Title == "" || !input.Priority.Valid() {
		return domain.Task{}, domain.ErrInvalidInput
	}

	now := s.now()
	return s.taskRepository.Create(ctx, domain.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		Priority:    input.Priority,
		Category:    input.Category,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput) (domain.Task, error) {
	if !domain.ValidID(taskID) {
		return domain.Task{}, domain.ErrInvalidID
	}
	if input.IsEmpty() {
		return domain.Task{}, domain.ErrInvalidInput
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return domain.Task{}, domain.ErrInvalidInput
		}
		input.Title = &title
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return domain.Task{}, domain.ErrInvalidInput
	}

	return s.taskRepository.Update(ctx, userID, taskID, input, s.now())
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if !domain.ValidID(taskID) {
		return domain.ErrInvalidID
	}
	return s.taskRepository.Delete(ctx, userID, taskID)
}

// CompletedOn returns the caller's tasks that were completed on date, judged
// by the day their last modification fell on.
func (s *TaskService) CompletedOn(ctx context.Context, userID, date string) ([]domain.Task, error) {
	from, to, err := domain.DayBounds(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.taskRepository.ListCompletedBetween(ctx, userID, from, to)
}

func utcNow() time.Time {
	return time.Now().UTC()
}

var _ ports.TaskService = (*TaskService)(nil)
