package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskflow/internal/core/domain"
)

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	Title       string             `bson:"title"`
	Description *string            `bson:"description,omitempty"`
	Completed   bool               `bson:"completed"`
	Priority    string             `bson:"priority"`
	Category    string             `bson:"category"`
	DueDate     *time.Time         `bson:"dueDate,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type completedTaskDocument struct {
	Title       string     `bson:"title"`
	Description *string    `bson:"description,omitempty"`
	Category    string     `bson:"category"`
	Priority    string     `bson:"priority"`
	CompletedAt *time.Time `bson:"completedAt,omitempty"`
}

type summaryDocument struct {
	ID             primitive.ObjectID      `bson:"_id,omitempty"`
	UserID         string                  `bson:"userId"`
	Date           string                  `bson:"date"`
	Summary        string                  `bson:"summary"`
	TaskCount      int                     `bson:"taskCount"`
	Categories     []string                `bson:"categories"`
	CompletedTasks []completedTaskDocument `bson:"completedTasks"`
	CreatedAt      time.Time               `bson:"createdAt"`
	UpdatedAt      time.Time               `bson:"updatedAt"`
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (d taskDocument) toDomain() domain.Task {
	return domain.Task{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		Priority:    domain.TaskPriority(d.Priority),
		Category:    d.Category,
		DueDate:     utcPtr(d.DueDate),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func newTaskDocument(task domain.Task) taskDocument {
	return taskDocument{
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		Category:    task.Category,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func (d summaryDocument) toDomain() domain.Summary {
	categories := d.Categories
	if categories == nil {
		categories = []string{}
	}
	completedTasks := make([]domain.CompletedTask, 0, len(d.CompletedTasks))
	for _, task := range d.CompletedTasks {
		completedTasks = append(completedTasks, domain.CompletedTask{
			Title:       task.Title,
			Description: task.Description,
			Category:    task.Category,
			Priority:    domain.TaskPriority(task.Priority),
			CompletedAt: utcPtr(task.CompletedAt),
		})
	}

	return domain.Summary{
		ID:             d.ID.Hex(),
		UserID:         d.UserID,
		Date:           d.Date,
		Summary:        d.Summary,
		TaskCount:      d.TaskCount,
		Categories:     categories,
		CompletedTasks: completedTasks,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

func newCompletedTaskDocuments(tasks []domain.CompletedTask) []completedTaskDocument {
	docs := make([]completedTaskDocument, 0, len(tasks))
	for _, task := range tasks {
		docs = append(docs, completedTaskDocument{
			Title:       task.Title,
			Description: task.Description,
			Category:    task.Category,
			Priority:    string(task.Priority),
			CompletedAt: task.CompletedAt,
		})
	}
	return docs
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.UTC()
	return &value
}
