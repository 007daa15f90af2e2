package mapper

import (
	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/core/domain"
)

func ToSummaryItems(summaries []domain.Summary) []dto.SummaryItem {
	items := make([]dto.SummaryItem, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, ToSummaryItem(summary))
	}
	return items
}

func ToSummaryItem(summary domain.Summary) dto.SummaryItem {
	return dto.SummaryItem{
		ID:             summary.ID,
		Date:           summary.Date,
		Summary:        summary.Summary,
		TaskCount:      summary.TaskCount,
		Categories:     nonNilStrings(summary.Categories),
		CompletedTasks: ToCompletedTaskItems(summary.CompletedTasks),
		CreatedAt:      formatTime(summary.CreatedAt),
		UpdatedAt:      formatTime(summary.UpdatedAt),
	}
}

func ToGeneratedSummaryItem(generated domain.GeneratedSummary) dto.GeneratedSummaryItem {
	return dto.GeneratedSummaryItem{
		Date:           generated.Date,
		Summary:        generated.Summary,
		TaskCount:      generated.TaskCount,
		Categories:     nonNilStrings(generated.Categories),
		CompletedTasks: ToCompletedTaskItems(generated.CompletedTasks),
	}
}

func ToCompletedTaskItems(tasks []domain.CompletedTask) []dto.CompletedTaskItem {
	items := make([]dto.CompletedTaskItem, 0, len(tasks))
	for _, task := range tasks {
		item := dto.CompletedTaskItem{
			Title:    task.Title,
			Category: task.Category,
			Priority: string(task.Priority),
		}
		if task.Description != nil {
			value := *task.Description
			item.Description = &value
		}
		if task.CompletedAt != nil {
			value := formatTime(*task.CompletedAt)
			item.CompletedAt = &value
		}
		items = append(items, item)
	}
	return items
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
