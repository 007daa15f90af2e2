package store

import (
	"taskflow/internal/client/api"
)

// pendingMutation records the fields a speculative update touched and their
// values before it. Reverting restores exactly those fields; updatedAt is
// never part of it.
type pendingMutation struct {
	fields []string
	prior  api.Task
}

func newPendingMutation(current Task, patch api.Patch) pendingMutation {
	return pendingMutation{
		fields: patch.Fields(),
		prior:  cloneTask(current).Task,
	}
}

func (m pendingMutation) revert(task *api.Task) {
	for _, field := range m.fields {
		switch field {
		case "title":
			task.Title = m.prior.Title
		case "description":
			task.Description = m.prior.Description
		case "completed":
			task.Completed = m.prior.Completed
		case "priority":
			task.Priority = m.prior.Priority
		case "category":
			task.Category = m.prior.Category
		case "dueDate":
			task.DueDate = m.prior.DueDate
		}
	}
}

// adopt copies the patched fields and updatedAt from the server's record so
// edits still in flight on other fields survive.
func (m pendingMutation) adopt(task *api.Task, server api.Task) {
	for _, field := range m.fields {
		switch field {
		case "title":
			task.Title = server.Title
		case "description":
			task.Description = server.Description
		case "completed":
			task.Completed = server.Completed
		case "priority":
			task.Priority = server.Priority
		case "category":
			task.Category = server.Category
		case "dueDate":
			task.DueDate = server.DueDate
		}
	}
	task.UpdatedAt = server.UpdatedAt
}

func applyPatch(task *api.Task, patch api.Patch) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	switch {
	case patch.ClearDescription:
		task.Description = nil
	case patch.Description != nil:
		value := *patch.Description
		task.Description = &value
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	switch {
	case patch.ClearDueDate:
		task.DueDate = nil
	case patch.DueDate != nil:
		value := *patch.DueDate
		task.DueDate = &value
	}
}
