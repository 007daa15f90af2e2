package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

const weeklySummaryFallback = "Week summary unavailable"

// SummaryGenerator turns completed-task snapshots into prose. It never
// persists what it produces.
type SummaryGenerator struct {
	provider ports.TextGenerator
}

// NewSummaryGenerator accepts a nil provider; only non-empty requests need one.
func NewSummaryGenerator(provider ports.TextGenerator) *SummaryGenerator {
	return &SummaryGenerator{provider: provider}
}

func (g *SummaryGenerator) Daily(ctx context.Context, date string, tasks []domain.CompletedTask) (string, error) {
	if len(tasks) == 0 {
		return domain.EmptySummaryText, nil
	}
	if g.provider == nil {
		return "", domain.ErrProviderNotConfigured
	}

	text, err := g.provider.GenerateText(ctx, DailyPrompt(date, tasks))
	if err != nil {
		return "", classifyProviderError(err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", domain.ErrSummaryGeneration)
	}
	return text, nil
}

func (g *SummaryGenerator) Weekly(ctx context.Context, summaries []domain.Summary) (string, error) {
	if len(summaries) == 0 {
		return "", domain.ErrSummaryNotFound
	}
	if g.provider == nil {
		return "", domain.ErrProviderNotConfigured
	}

	text, err := g.provider.GenerateText(ctx, WeeklyPrompt(summaries))
	if err != nil {
		return "", classifyProviderError(err)
	}
	if text = strings.TrimSpace(text); text == "" {
		return weeklySummaryFallback, nil
	}
	return text, nil
}

// DailyPrompt is deterministic for a given date and task order.
func DailyPrompt(date string, tasks []domain.CompletedTask) string {
	lines := make([]string, 0, len(tasks))
	for i, task := range tasks {
		line := fmt.Sprintf("%d. %s", i+1, task.Title)
		if task.Description != nil && *task.Description != "" {
			line += " - " + *task.Description
		}
		line += fmt.Sprintf(" (%s, %s priority)", task.Category, task.Priority)
		lines = append(lines, line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a productivity assistant. I completed the following tasks today (%s):\n\n", date)
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nPlease generate a positive, encouraging summary of my accomplishments today. The summary should:\n")
	b.WriteString("- Highlight what I achieved\n")
	b.WriteString("- Mention the variety of areas I worked on\n")
	b.WriteString("- Be motivating and acknowledge my progress\n")
	b.WriteString("- Be 2-3 sentences long\n")
	b.WriteString("- Use a warm, personal tone\n\n")
	b.WriteString("Focus on productivity insights and patterns if you notice any.")
	return b.String()
}

func WeeklyPrompt(summaries []domain.Summary) string {
	lines := make([]string, 0, len(summaries))
	for i, summary := range summaries {
		lines = append(lines, fmt.Sprintf("Day %d (%s): %d tasks - %s", i+1, summary.Date, summary.TaskCount, summary.Summary))
	}

	var b strings.Builder
	b.WriteString("Based on these daily task summaries from the past week:\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nPlease provide a weekly productivity summary that:\n")
	b.WriteString("- Highlights overall progress and patterns\n")
	b.WriteString("- Notes areas of consistency or growth\n")
	b.WriteString("- Provides gentle suggestions for the upcoming week\n")
	b.WriteString("- Maintains an encouraging tone\n")
	b.WriteString("- Is 3-4 sentences long\n\n")
	b.WriteString("Focus on productivity trends and celebrate achievements.")
	return b.String()
}

func classifyProviderError(err error) error {
	for _, known := range []error{
		domain.ErrProviderNotConfigured,
		domain.ErrProviderUnauthorized,
		domain.ErrProviderQuotaExceeded,
		domain.ErrProviderModelUnavailable,
		domain.ErrSummaryGeneration,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrSummaryGeneration, err)
}
