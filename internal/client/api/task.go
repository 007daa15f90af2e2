package api

import (
	"fmt"
	"time"

	"taskflow/internal/adapter/http/dto"
)

// Task is the client-side view of a task record.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Draft holds the fields of a task about to be created.
type Draft struct {
	Title       string
	Description *string
	Priority    string
	Category    string
	DueDate     *time.Time
}

func (d Draft) request() dto.CreateTaskRequest {
	req := dto.CreateTaskRequest{
		Title:       d.Title,
		Description: d.Description,
	}
	if d.Priority != "" {
		priority := d.Priority
		req.Priority = &priority
	}
	if d.Category != "" {
		category := d.Category
		req.Category = &category
	}
	if d.DueDate != nil {
		dueDate := d.DueDate.UTC().Format(time.RFC3339)
		req.DueDate = &dueDate
	}
	return req
}

// Patch is a partial task update. Nil fields are left alone; the Clear flags
// send an explicit null for the nullable fields.
type Patch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Completed        *bool
	Priority         *string
	Category         *string
	DueDate          *time.Time
	ClearDueDate     bool
}

func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields lists the JSON names of the fields the patch touches.
func (p Patch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Description != nil || p.ClearDescription {
		fields = append(fields, "description")
	}
	if p.Completed != nil {
		fields = append(fields, "completed")
	}
	if p.Priority != nil {
		fields = append(fields, "priority")
	}
	if p.Category != nil {
		fields = append(fields, "category")
	}
	if p.DueDate != nil || p.ClearDueDate {
		fields = append(fields, "dueDate")
	}
	return fields
}

func (p Patch) body() map[string]any {
	body := make(map[string]any)
	if p.Title != nil {
		body["title"] = *p.Title
	}
	switch {
	case p.ClearDescription:
		body["description"] = nil
	case p.Description != nil:
		body["description"] = *p.Description
	}
	if p.Completed != nil {
		body["completed"] = *p.Completed
	}
	if p.Priority != nil {
		body["priority"] = *p.Priority
	}
	if p.Category != nil {
		body["category"] = *p.Category
	}
	switch {
	case p.ClearDueDate:
		body["dueDate"] = nil
	case p.DueDate != nil:
		body["dueDate"] = p.DueDate.UTC().Format(time.RFC3339)
	}
	return body
}

func fromTaskItems(items []dto.TaskItem) ([]Task, error) {
	tasks := make([]Task, 0, len(items))
	for _, item := range items {
		task, err := fromTaskItem(item)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func fromTaskItem(item dto.TaskItem) (Task, error) {
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("task %s createdAt: %w", item.ID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, item.UpdatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("task %s updatedAt: %w", item.ID, err)
	}

	task := Task{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Completed:   item.Completed,
		Priority:    item.Priority,
		Category:    item.Category,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if item.DueDate != nil {
		dueDate, err := time.Parse(time.RFC3339, *item.DueDate)
		if err != nil {
			return Task{}, fmt.Errorf("task %s dueDate: %w", item.ID, err)
		}
		task.DueDate = &dueDate
	}
	return task, nil
}
