package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

var taskUpdateFields = []string{"title", "description", "completed", "priority", "category", "dueDate"}

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	if hasJSONField(raw, "priority") && !isJSONNull(raw["priority"]) && req.Priority == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	input := domain.CreateTaskInput{
		Title:       title,
		Description: req.Description,
	}
	if req.Priority != nil {
		input.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.Category != nil {
		input.Category = strings.TrimSpace(*req.Category)
	}
	if req.DueDate != nil {
		dueDate, err := ParseDueDate(*req.DueDate)
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		input.DueDate = &dueDate
	}

	return input.Normalize(), nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	// title, completed, priority and category are not nullable
	for _, field := range []string{"title", "completed", "priority", "category"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
	}

	var title *string
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		title = &value
	}

	var priority *domain.TaskPriority
	if req.Priority != nil {
		value := domain.TaskPriority(*req.Priority)
		priority = &value
	}

	var category *string
	if req.Category != nil {
		value := strings.TrimSpace(*req.Category)
		if value == "" {
			value = domain.DefaultTaskCategory
		}
		category = &value
	}

	descriptionSet := hasJSONField(raw, "description")

	var dueDate *time.Time
	dueDateSet := hasJSONField(raw, "dueDate")
	if dueDateSet && !isJSONNull(raw["dueDate"]) {
		if req.DueDate == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		parsed, err := ParseDueDate(*req.DueDate)
		if err != nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		dueDate = &parsed
	}

	return domain.UpdateTaskInput{
		Title:          title,
		Description:    req.Description,
		DescriptionSet: descriptionSet,
		Completed:      req.Completed,
		Priority:       priority,
		Category:       category,
		DueDate:        dueDate,
		DueDateSet:     dueDateSet,
	}, nil
}

// ParseDueDate accepts a full RFC 3339 timestamp or a bare YYYY-MM-DD date,
// which is read as midnight UTC.
func ParseDueDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	return time.ParseInLocation(domain.SummaryDateLayout, value, time.UTC)
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	for _, field := range taskUpdateFields {
		if hasJSONField(raw, field) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
