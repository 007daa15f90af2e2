package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/core/domain"
)

func TestTaskHandler_ListTasks_Success(t *testing.T) {
	description := "2 litres"
	dueDate := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 2, 10, 20, 30, 0, time.UTC)
	updatedAt := time.Date(2026, 3, 2, 11, 20, 30, 0, time.UTC)

	f := newFixture(stubPinger{})
	f.tasks.On("ListTasks", mock.Anything, userID).Return(
		[]domain.Task{
			{
				ID:          taskID,
				UserID:      userID,
				Title:       "Buy milk",
				Description: &description,
				Priority:    domain.TaskPriorityLow,
				Category:    "Personal",
				DueDate:     &dueDate,
				CreatedAt:   createdAt,
				UpdatedAt:   updatedAt,
			},
		},
		nil,
	).Once()

	rec := f.do(http.MethodGet, "/api/tasks", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, taskID, got[0].ID)
	require.Equal(t, "Buy milk", got[0].Title)
	require.Equal(t, "2 litres", *got[0].Description)
	require.False(t, got[0].Completed)
	require.Equal(t, "low", got[0].Priority)
	require.Equal(t, "Personal", got[0].Category)
	require.Equal(t, "2026-03-05T00:00:00Z", *got[0].DueDate)
	require.Equal(t, "2026-03-02T10:20:30Z", got[0].CreatedAt)
	require.Equal(t, "2026-03-02T11:20:30Z", got[0].UpdatedAt)
	f.tasks.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_Error(t *testing.T) {
	f := newFixture(stubPinger{})
	f.tasks.On("ListTasks", mock.Anything, userID).Return(nil, errors.New("db is down")).Once()

	rec := f.do(http.MethodGet, "/api/tasks", "")

	requireAPIError(t, rec, http.StatusInternalServerError, "failed to list tasks")
	f.tasks.AssertExpectations(t)
}

func TestTaskHandler_RequiresToken(t *testing.T) {
	f := newFixture(stubPinger{})

	rec := f.do(http.MethodGet, "/api/tasks", "", "Authorization", "")
	requireAPIError(t, rec, http.StatusUnauthorized, "No token provided")

	rec = f.do(http.MethodGet, "/api/tasks", "", "Authorization", "Bearer expired")
	requireAPIError(t, rec, http.StatusUnauthorized, "Invalid token")

	f.tasks.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything)
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	createdAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	f := newFixture(stubPinger{})
	f.tasks.On("CreateTask", mock.Anything, userID, domain.CreateTaskInput{
		Title:    "Buy milk",
		Priority: domain.TaskPriorityLow,
		Category: "Personal",
	}).Return(domain.Task{
		ID:        taskID,
		UserID:    userID,
		Title:     "Buy milk",
		Priority:  domain.TaskPriorityLow,
		Category:  "Personal",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil).Once()

	rec := f.do(http.MethodPost, "/api/tasks", `{"title":"Buy milk","priority":"low","category":"Personal"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, taskID, got.ID)
	require.False(t, got.Completed)
	require.Nil(t, got.DueDate)
	f.tasks.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	for _, body := range []string{
		``,
		`{}`,
		`{"title":"   "}`,
		`{"title":"x","priority":"urgent"}`,
		`{"title":"x","dueDate":"someday"}`,
		`not json`,
	} {
		f := newFixture(stubPinger{})

		rec := f.do(http.MethodPost, "/api/tasks", body)

		requireAPIError(t, rec, http.StatusBadRequest, "Invalid task payload")
		f.tasks.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestTaskHandler_CreateTask_TranslatesErrors(t *testing.T) {
	f := newFixture(stubPinger{})

	rec := f.do(http.MethodPost, "/api/tasks", `{}`, "Accept-Language", "fr")

	requireAPIError(t, rec, http.StatusBadRequest, "Contenu de la tâche invalide")
}

func TestTaskHandler_UpdateTask_Success(t *testing.T) {
	completed := true
	updatedAt := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	f := newFixture(stubPinger{})
	f.tasks.On("UpdateTask", mock.Anything, userID, taskID, domain.UpdateTaskInput{
		Completed:      &completed,
		DescriptionSet: true,
	}).Return(domain.Task{
		ID:        taskID,
		Title:     "Buy milk",
		Completed: true,
		Priority:  domain.TaskPriorityLow,
		Category:  "Personal",
		UpdatedAt: updatedAt,
	}, nil).Once()

	rec := f.do(http.MethodPut, "/api/tasks/"+taskID, `{"completed":true,"description":null}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Completed)
	require.Nil(t, got.Description)
	f.tasks.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_InvalidTaskID(t *testing.T) {
	f := newFixture(stubPinger{})

	rec := f.do(http.MethodPut, "/api/tasks/undefined", `{"completed":true}`)

	requireAPIError(t, rec, http.StatusBadRequest, "Invalid id")
	f.tasks.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_UpdateTask_EmptyPatch(t *testing.T) {
	f := newFixture(stubPinger{})

	rec := f.do(http.MethodPut, "/api/tasks/"+taskID, `{}`)

	requireAPIError(t, rec, http.StatusBadRequest, "Invalid task payload")
}

func TestTaskHandler_UpdateTask_ForeignTaskIsNotFound(t *testing.T) {
	f := newFixture(stubPinger{})
	f.tasks.On("UpdateTask", mock.Anything, userID, taskID, mock.Anything).
		Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	rec := f.do(http.MethodPut, "/api/tasks/"+taskID, `{"title":"hijack"}`)

	requireAPIError(t, rec, http.StatusNotFound, "Task not found")
	f.tasks.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask_TwiceIsNotFound(t *testing.T) {
	f := newFixture(stubPinger{})
	f.tasks.On("DeleteTask", mock.Anything, userID, taskID).Return(nil).Once()
	f.tasks.On("DeleteTask", mock.Anything, userID, taskID).Return(domain.ErrTaskNotFound).Once()

	rec := f.do(http.MethodDelete, "/api/tasks/"+taskID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = f.do(http.MethodDelete, "/api/tasks/"+taskID, "")
	requireAPIError(t, rec, http.StatusNotFound, "Task not found")
	f.tasks.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask_InvalidTaskID(t *testing.T) {
	f := newFixture(stubPinger{})

	rec := f.do(http.MethodDelete, "/api/tasks/12", "")

	requireAPIError(t, rec, http.StatusBadRequest, "Invalid id")
}
