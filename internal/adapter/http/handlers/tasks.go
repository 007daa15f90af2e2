package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/adapter/http/mapper"
	"taskflow/internal/adapter/http/validation"
	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
	"taskflow/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.String("user_id", userID), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	raw, err := bindJSONWithRaw(c, &req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
			return
		}

		zap.L().Error("failed to create task", zap.String("user_id", userID), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if !domain.ValidID(taskID) {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID)
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := bindJSONWithRaw(c, &req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, taskID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			abortWithError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
		case errors.Is(err, domain.ErrInvalidID):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID)
		case errors.Is(err, domain.ErrInvalidInput):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		default:
			zap.L().Error("failed to update task", zap.String("task_id", taskID), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailUpdateTask)
		}
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if !domain.ValidID(taskID) {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			abortWithError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
		case errors.Is(err, domain.ErrInvalidID):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID)
		default:
			zap.L().Error("failed to delete task", zap.String("task_id", taskID), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailDeleteTask)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// bindJSONWithRaw decodes the body twice: into req with gin's validator, and
// into a raw field map used to tell an explicit null from an absent field.
func bindJSONWithRaw(c *gin.Context, req any) (map[string]json.RawMessage, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if err := binding.JSON.BindBody(body, req); err != nil {
		return nil, err
	}
	return raw, nil
}
