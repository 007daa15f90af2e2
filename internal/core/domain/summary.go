package domain

import (
	"strings"
	"time"
)

const (
	SummaryDateLayout   = "2006-01-02"
	DefaultSummaryLimit = 30
	MaxSummaryLimit     = 365
)

// EmptySummaryText is returned instead of calling the provider when nothing
// was completed on the requested day.
const EmptySummaryText = "No tasks were completed today. Take some time to plan for tomorrow!"

// CompletedTask is the point-in-time copy of a task embedded in a summary.
// It is never refreshed when the live task changes.
type CompletedTask struct {
	Title       string
	Description *string
	Category    string
	Priority    TaskPriority
	CompletedAt *time.Time
}

type Summary struct {
	ID             string
	UserID         string
	Date           string
	Summary        string
	TaskCount      int
	Categories     []string
	CompletedTasks []CompletedTask
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type UpsertSummaryInput struct {
	Date           string
	Summary        string
	TaskCount      int
	Categories     []string
	CompletedTasks []CompletedTask
}

// GeneratedSummary is the unsaved output of a generation request.
type GeneratedSummary struct {
	Date           string
	Summary        string
	TaskCount      int
	Categories     []string
	CompletedTasks []CompletedTask
}

func ValidSummaryDate(value string) bool {
	_, err := time.Parse(SummaryDateLayout, value)
	return err == nil
}

// SnapshotTasks copies tasks into summary snapshots, using UpdatedAt as the
// completion instant.
func SnapshotTasks(tasks []Task) []CompletedTask {
	snapshots := make([]CompletedTask, 0, len(tasks))
	for _, task := range tasks {
		completedAt := task.UpdatedAt
		snapshot := CompletedTask{
			Title:       task.Title,
			Category:    task.Category,
			Priority:    task.Priority,
			CompletedAt: &completedAt,
		}
		if task.Description != nil {
			value := *task.Description
			snapshot.Description = &value
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

// DistinctCategories keeps first-seen order.
func DistinctCategories(tasks []CompletedTask) []string {
	seen := make(map[string]struct{}, len(tasks))
	categories := make([]string, 0, len(tasks))
	for _, task := range tasks {
		if _, ok := seen[task.Category]; ok {
			continue
		}
		seen[task.Category] = struct{}{}
		categories = append(categories, task.Category)
	}
	return categories
}

// DayBounds returns the UTC [start, end) interval of a YYYY-MM-DD date.
func DayBounds(date string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(SummaryDateLayout, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}
