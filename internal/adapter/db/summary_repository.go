package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

const upsertSummarySuffix = `ON DUPLICATE KEY UPDATE
  summary = VALUES(summary),
  task_count = VALUES(task_count),
  categories = VALUES(categories),
  completed_tasks = VALUES(completed_tasks),
  updated_at = VALUES(updated_at)`

var summaryColumns = []string{
	"id",
	"user_id",
	"date",
	"summary",
	"task_count",
	"categories",
	"completed_tasks",
	"created_at",
	"updated_at",
}

type SummaryRepository struct {
	db *sqlx.DB
}

type summaryRow struct {
	ID             string     `db:"id"`
	UserID         string     `db:"user_id"`
	Date           string     `db:"date"`
	Summary        string     `db:"summary"`
	TaskCount      int        `db:"task_count"`
	Categories     jsonColumn `db:"categories"`
	CompletedTasks jsonColumn `db:"completed_tasks"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

type completedTaskJSON struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

var _ ports.SummaryRepository = (*SummaryRepository)(nil)

func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.Summary, error) {
	query, args, err := sq.Select(summaryColumns...).
		From("task_summaries").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.selectSummaries(ctx, query, args...)
}

func (r *SummaryRepository) GetByDate(ctx context.Context, userID, date string) (domain.Summary, error) {
	query, args, err := sq.Select(summaryColumns...).
		From("task_summaries").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"date": date}).
		ToSql()
	if err != nil {
		return domain.Summary{}, err
	}

	var row summaryRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Summary{}, domain.ErrSummaryNotFound
		}
		return domain.Summary{}, err
	}
	return mapSummaryRowToDomain(row)
}

// Upsert relies on the (user_id, date) unique key, so concurrent writers
// resolve inside MySQL and the last write wins.
func (r *SummaryRepository) Upsert(ctx context.Context, summary domain.Summary) (domain.Summary, error) {
	categories, err := newJSONColumn(summary.Categories)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("encode categories: %w", err)
	}
	completedTasks, err := newJSONColumn(toCompletedTaskJSON(summary.CompletedTasks))
	if err != nil {
		return domain.Summary{}, fmt.Errorf("encode completed tasks: %w", err)
	}

	query, args, err := sq.Insert("task_summaries").
		Columns(summaryColumns...).
		Values(domain.NewID(), summary.UserID, summary.Date, summary.Summary, summary.TaskCount,
			categories, completedTasks, summary.CreatedAt, summary.UpdatedAt).
		Suffix(upsertSummarySuffix).
		ToSql()
	if err != nil {
		return domain.Summary{}, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateEntry(err) {
			return domain.Summary{}, domain.ErrSummaryConflict
		}
		return domain.Summary{}, err
	}

	return r.GetByDate(ctx, summary.UserID, summary.Date)
}

func (r *SummaryRepository) DeleteByDate(ctx context.Context, userID, date string) error {
	query, args, err := sq.Delete("task_summaries").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"date": date}).
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
		return domain.ErrSummaryNotFound
	}
	return nil
}

func (r *SummaryRepository) ListRange(ctx context.Context, userID, startDate, endDate string) ([]domain.Summary, error) {
	query, args, err := sq.Select(summaryColumns...).
		From("task_summaries").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"date": startDate}).
		Where(sq.LtOrEq{"date": endDate}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.selectSummaries(ctx, query, args...)
}

func (r *SummaryRepository) selectSummaries(ctx context.Context, query string, args ...interface{}) ([]domain.Summary, error) {
	var rows []summaryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	summaries := make([]domain.Summary, 0, len(rows))
	for _, row := range rows {
		summary, err := mapSummaryRowToDomain(row)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func mapSummaryRowToDomain(row summaryRow) (domain.Summary, error) {
	categories := []string{}
	if err := row.Categories.Unmarshal(&categories); err != nil {
		return domain.Summary{}, fmt.Errorf("decode categories: %w", err)
	}
	var stored []completedTaskJSON
	if err := row.CompletedTasks.Unmarshal(&stored); err != nil {
		return domain.Summary{}, fmt.Errorf("decode completed tasks: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}

	completedTasks := make([]domain.CompletedTask, 0, len(stored))
	for _, task := range stored {
		completedTasks = append(completedTasks, domain.CompletedTask{
			Title:       task.Title,
			Description: task.Description,
			Category:    task.Category,
			Priority:    domain.TaskPriority(task.Priority),
			CompletedAt: task.CompletedAt,
		})
	}

	return domain.Summary{
		ID:             row.ID,
		UserID:         row.UserID,
		Date:           row.Date,
		Summary:        row.Summary,
		TaskCount:      row.TaskCount,
		Categories:     categories,
		CompletedTasks: completedTasks,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

func toCompletedTaskJSON(tasks []domain.CompletedTask) []completedTaskJSON {
	out := make([]completedTaskJSON, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, completedTaskJSON{
			Title:       task.Title,
			Description: task.Description,
			Category:    task.Category,
			Priority:    string(task.Priority),
			CompletedAt: task.CompletedAt,
		})
	}
	return out
}
