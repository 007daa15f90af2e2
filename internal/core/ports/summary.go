package ports

import (
	"context"
	"time"

	"taskflow/internal/core/domain"
)

// SummaryRepository keys summaries by (user, date). Upsert must be atomic in
// the store; a lost unique-key race is reported as domain.ErrSummaryConflict.
type SummaryRepository interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.Summary, error)
	GetByDate(ctx context.Context, userID, date string) (domain.Summary, error)
	Upsert(ctx context.Context, summary domain.Summary) (domain.Summary, error)
	DeleteByDate(ctx context.Context, userID, date string) error
	ListRange(ctx context.Context, userID, startDate, endDate string) ([]domain.Summary, error)
}

type SummaryService interface {
	ListSummaries(ctx context.Context, userID string, limit int) ([]domain.Summary, error)
	GetSummary(ctx context.Context, userID, date string) (domain.Summary, error)
	UpsertSummary(ctx context.Context, userID string, input domain.UpsertSummaryInput) (domain.Summary, error)
	DeleteSummary(ctx context.Context, userID, date string) error
	ListSummaryRange(ctx context.Context, userID, startDate, endDate string) ([]domain.Summary, error)
	GenerateDailySummary(ctx context.Context, userID, date string) (domain.GeneratedSummary, error)
	GenerateWeeklySummary(ctx context.Context, userID, startDate, endDate string) (string, error)
}

// TextGenerator is the external generative text provider.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Clock lets services stamp timestamps deterministically in tests.
type Clock func() time.Time
