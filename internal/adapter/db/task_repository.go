package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

var taskColumns = []string{
	"id",
	"user_id",
	"title",
	"description",
	"completed",
	"priority",
	"category",
	"due_date",
	"created_at",
	"updated_at",
}

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Completed   bool           `db:"completed"`
	Priority    string         `db:"priority"`
	Category    string         `db:"category"`
	DueDate     sql.NullTime   `db:"due_date"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	query, args, err := sq.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.selectTasks(ctx, query, args...)
}

func (r *TaskRepository) ListCompletedBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Task, error) {
	query, args, err := sq.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"completed": true}).
		Where(sq.GtOrEq{"updated_at": from}).
		Where(sq.Lt{"updated_at": to}).
		OrderBy("updated_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.selectTasks(ctx, query, args...)
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.ID = domain.NewID()
	row := mapDomainTaskToRow(task)

	query, args, err := sq.Insert("tasks").
		Columns(taskColumns...).
		Values(row.ID, row.UserID, row.Title, row.Description, row.Completed, row.Priority,
			row.Category, row.DueDate, row.CreatedAt, row.UpdatedAt).
		ToSql()
	if err != nil {
		return domain.Task{}, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput, updatedAt time.Time) (domain.Task, error) {
	builder := sq.Update("tasks").Set("updated_at", updatedAt)
	if input.Title != nil {
		builder = builder.Set("title", *input.Title)
	}
	if input.DescriptionSet {
		builder = builder.Set("description", nullString(input.Description))
	}
	if input.Completed != nil {
		builder = builder.Set("completed", *input.Completed)
	}
	if input.Priority != nil {
		builder = builder.Set("priority", string(*input.Priority))
	}
	if input.Category != nil {
		builder = builder.Set("category", *input.Category)
	}
	if input.DueDateSet {
		builder = builder.Set("due_date", nullTime(input.DueDate))
	}

	query, args, err := builder.
		Where(sq.Eq{"id": taskID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return domain.Task{}, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return domain.Task{}, err
	}

	return r.get(ctx, userID, taskID)
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	query, args, err := sq.Delete("tasks").
		Where(sq.Eq{"id": taskID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) get(ctx context.Context, userID, taskID string) (domain.Task, error) {
	query, args, err := sq.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return domain.Task{}, err
	}

	var row taskRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) selectTasks(ctx context.Context, query string, args ...interface{}) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Completed: row.Completed,
		Priority:  domain.TaskPriority(row.Priority),
		Category:  row.Category,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	return task
}

func mapDomainTaskToRow(task domain.Task) taskRow {
	return taskRow{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: nullString(task.Description),
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		Category:    task.Category,
		DueDate:     nullTime(task.DueDate),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}
