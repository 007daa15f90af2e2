package validation

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/core/domain"
)

var (
	ErrInvalidSummaryPayload = errors.New("invalid summary payload")
	ErrInvalidSummaryDate    = errors.New("invalid summary date")
)

func BuildUpsertSummaryInput(req dto.UpsertSummaryRequest) (domain.UpsertSummaryInput, error) {
	if !domain.ValidSummaryDate(req.Date) {
		return domain.UpsertSummaryInput{}, ErrInvalidSummaryDate
	}
	if strings.TrimSpace(req.Summary) == "" || req.TaskCount == nil || *req.TaskCount < 0 {
		return domain.UpsertSummaryInput{}, ErrInvalidSummaryPayload
	}

	completedTasks := make([]domain.CompletedTask, 0, len(req.CompletedTasks))
	for _, item := range req.CompletedTasks {
		task := domain.CompletedTask{
			Title:       item.Title,
			Description: item.Description,
			Category:    item.Category,
			Priority:    domain.TaskPriority(item.Priority),
		}
		if !task.Priority.Valid() {
			return domain.UpsertSummaryInput{}, ErrInvalidSummaryPayload
		}
		if item.CompletedAt != nil {
			completedAt, err := time.Parse(time.RFC3339, *item.CompletedAt)
			if err != nil {
				return domain.UpsertSummaryInput{}, ErrInvalidSummaryPayload
			}
			completedAt = completedAt.UTC()
			task.CompletedAt = &completedAt
		}
		completedTasks = append(completedTasks, task)
	}

	categories := req.Categories
	if categories == nil {
		categories = []string{}
	}

	return domain.UpsertSummaryInput{
		Date:           req.Date,
		Summary:        req.Summary,
		TaskCount:      *req.TaskCount,
		Categories:     categories,
		CompletedTasks: completedTasks,
	}, nil
}

// ParseSummaryLimit reads the ?limit query value. An empty value means the
// default.
func ParseSummaryLimit(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.DefaultSummaryLimit, nil
	}

	limit, err := strconv.Atoi(value)
	if err != nil || limit < 1 || limit > domain.MaxSummaryLimit {
		return 0, ErrInvalidSummaryPayload
	}
	return limit, nil
}

func ValidateDateRange(startDate, endDate string) error {
	if !domain.ValidSummaryDate(startDate) || !domain.ValidSummaryDate(endDate) {
		return ErrInvalidSummaryDate
	}
	return nil
}
