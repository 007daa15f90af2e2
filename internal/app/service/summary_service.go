package service

import (
	"context"
	"strings"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

type completedTaskLister interface {
	CompletedOn(ctx context.Context, userID, date string) ([]domain.Task, error)
}

type SummaryService struct {
	summaryRepository ports.SummaryRepository
	tasks             completedTaskLister
	generator         *SummaryGenerator
	now               ports.Clock
}

func NewSummaryService(summaryRepository ports.SummaryRepository, tasks completedTaskLister, generator *SummaryGenerator) *SummaryService {
	return &SummaryService{
		summaryRepository: summaryRepository,
		tasks:             tasks,
		generator:         generator,
		now:               utcNow,
	}
}

func (s *SummaryService) WithClock(now ports.Clock) *SummaryService {
	s.now = now
	return s
}

func (s *SummaryService) ListSummaries(ctx context.Context, userID string, limit int) ([]domain.Summary, error) {
	if limit < 1 || limit > domain.MaxSummaryLimit {
		return nil, domain.ErrInvalidInput
	}
	return s.summaryRepository.ListRecent(ctx, userID, limit)
}

func (s *SummaryService) GetSummary(ctx context.Context, userID, date string) (domain.Summary, error) {
	return s.summaryRepository.GetByDate(ctx, userID, date)
}

func (s *SummaryService) UpsertSummary(ctx context.Context, userID string, input domain.UpsertSummaryInput) (domain.Summary, error) {
	text := strings.TrimSpace(input.Summary)
	if !domain.ValidSummaryDate(input.Date) || text == "" || input.TaskCount < 0 {
		return domain.Summary{}, domain.ErrInvalidInput
	}

	categories := input.Categories
	if categories == nil {
		categories = []string{}
	}
	completedTasks := input.CompletedTasks
	if completedTasks == nil {
		completedTasks = []domain.CompletedTask{}
	}

	now := s.now()
	return s.summaryRepository.Upsert(ctx, domain.Summary{
		UserID:         userID,
		Date:           input.Date,
		Summary:        text,
		TaskCount:      input.TaskCount,
		Categories:     categories,
		CompletedTasks: completedTasks,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (s *SummaryService) DeleteSummary(ctx context.Context, userID, date string) error {
	return s.summaryRepository.DeleteByDate(ctx, userID, date)
}

func (s *SummaryService) ListSummaryRange(ctx context.Context, userID, startDate, endDate string) ([]domain.Summary, error) {
	if !domain.ValidSummaryDate(startDate) || !domain.ValidSummaryDate(endDate) {
		return nil, domain.ErrInvalidInput
	}
	return s.summaryRepository.ListRange(ctx, userID, startDate, endDate)
}

func (s *SummaryService) GenerateDailySummary(ctx context.Context, userID, date string) (domain.GeneratedSummary, error) {
	if !domain.ValidSummaryDate(date) {
		return domain.GeneratedSummary{}, domain.ErrInvalidInput
	}

	tasks, err := s.tasks.CompletedOn(ctx, userID, date)
	if err != nil {
		return domain.GeneratedSummary{}, err
	}
	snapshots := domain.SnapshotTasks(tasks)

	text, err := s.generator.Daily(ctx, date, snapshots)
	if err != nil {
		return domain.GeneratedSummary{}, err
	}

	return domain.GeneratedSummary{
		Date:           date,
		Summary:        text,
		TaskCount:      len(snapshots),
		Categories:     domain.DistinctCategories(snapshots),
		CompletedTasks: snapshots,
	}, nil
}

func (s *SummaryService) GenerateWeeklySummary(ctx context.Context, userID, startDate, endDate string) (string, error) {
	summaries, err := s.ListSummaryRange(ctx, userID, startDate, endDate)
	if err != nil {
		return "", err
	}
	return s.generator.Weekly(ctx, summaries)
}

var _ ports.SummaryService = (*SummaryService)(nil)
