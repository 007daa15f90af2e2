package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskflow/internal/core/domain"
)

const (
	userID = "65f1c0ffee0000000000a001"
	taskID = "65f1c0ffee0000000000b001"
)

var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestTaskService_CreateTask_AppliesDefaults(t *testing.T) {
	repo := new(taskRepositoryMock)
	repo.On("Create", mock.Anything, domain.Task{
		UserID:    userID,
		Title:     "Buy milk",
		Priority:  domain.TaskPriorityMedium,
		Category:  domain.DefaultTaskCategory,
		CreatedAt: fixedNow,
		UpdatedAt: fixedNow,
	}).Return(domain.Task{ID: taskID, Title: "Buy milk"}, nil).Once()

	svc := NewTaskService(repo).WithClock(fixedClock)
	task, err := svc.CreateTask(context.Background(), userID, domain.CreateTaskInput{Title: "  Buy milk "})

	require.NoError(t, err)
	require.Equal(t, taskID, task.ID)
	repo.AssertExpectations(t)
}

func TestTaskService_CreateTask_RejectsBlankTitle(t *testing.T) {
	repo := new(taskRepositoryMock)
	svc := NewTaskService(repo)

	_, err := svc.CreateTask(context.Background(), userID, domain.CreateTaskInput{Title: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateTask(context.Background(), userID, domain.CreateTaskInput{Title: "x", Priority: "urgent"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskService_UpdateTask_Validation(t *testing.T) {
	repo := new(taskRepositoryMock)
	svc := NewTaskService(repo)
	completed := true
	blank := " "

	_, err := svc.UpdateTask(context.Background(), userID, "not-an-id", domain.UpdateTaskInput{Completed: &completed})
	require.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.UpdateTask(context.Background(), userID, taskID, domain.UpdateTaskInput{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateTask(context.Background(), userID, taskID, domain.UpdateTaskInput{Title: &blank})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskService_UpdateTask_PassesNotFoundThrough(t *testing.T) {
	repo := new(taskRepositoryMock)
	completed := true
	input := domain.UpdateTaskInput{Completed: &completed}
	repo.On("Update", mock.Anything, userID, taskID, input, fixedNow).Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	svc := NewTaskService(repo).WithClock(fixedClock)
	_, err := svc.UpdateTask(context.Background(), userID, taskID, input)

	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	repo.AssertExpectations(t)
}

func TestTaskService_DeleteTask(t *testing.T) {
	repo := new(taskRepositoryMock)
	repo.On("Delete", mock.Anything, userID, taskID).Return(nil).Once()
	repo.On("Delete", mock.Anything, userID, taskID).Return(domain.ErrTaskNotFound).Once()
	svc := NewTaskService(repo)

	require.NoError(t, svc.DeleteTask(context.Background(), userID, taskID))
	require.ErrorIs(t, svc.DeleteTask(context.Background(), userID, taskID), domain.ErrTaskNotFound)
	require.ErrorIs(t, svc.DeleteTask(context.Background(), userID, "undefined"), domain.ErrInvalidID)
	repo.AssertExpectations(t)
}

func TestTaskService_CompletedOn_UsesUTCDayBounds(t *testing.T) {
	repo := new(taskRepositoryMock)
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	repo.On("ListCompletedBetween", mock.Anything, userID, from, from.AddDate(0, 0, 1)).Return([]domain.Task{{ID: taskID}}, nil).Once()

	tasks, err := NewTaskService(repo).CompletedOn(context.Background(), userID, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	_, err = NewTaskService(repo).CompletedOn(context.Background(), userID, "02/03/2026")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertExpectations(t)
}
