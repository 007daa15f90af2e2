package store

import (
	"fmt"
	"strings"
	"time"

	"taskflow/internal/core/domain"
)

// Filter narrows the task list. Empty values and "all" match everything.
type Filter struct {
	Search   string
	Category string
	Priority string
}

func (f Filter) Match(task Task) bool {
	if search := strings.ToLower(f.Search); search != "" {
		inTitle := strings.Contains(strings.ToLower(task.Title), search)
		inDescription := task.Description != nil && strings.Contains(strings.ToLower(*task.Description), search)
		if !inTitle && !inDescription {
			return false
		}
	}
	if !matchesFacet(f.Category, task.Category) {
		return false
	}
	return matchesFacet(f.Priority, task.Priority)
}

func matchesFacet(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, "all") || want == got
}

func (s *Store) Filter(f Filter) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if f.Match(task) {
			out = append(out, cloneTask(task))
		}
	}
	return out
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// Stats counts the list at the given instant. Overdue tasks are open tasks
// whose due date is before now.
func (s *Store) Stats(now time.Time) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats Stats
	for _, task := range s.tasks {
		stats.Total++
		if task.Completed {
			stats.Completed++
			continue
		}
		stats.Pending++
		if task.DueDate != nil && task.DueDate.Before(now) {
			stats.Overdue++
		}
	}
	return stats
}

type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Categories lists the categories in use, in first-seen order.
func (s *Store) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int)
	categories := make([]Category, 0)
	for _, task := range s.tasks {
		if i, ok := index[task.Category]; ok {
			categories[i].Count++
			continue
		}
		index[task.Category] = len(categories)
		categories = append(categories, Category{
			Name:  task.Category,
			Count: 1,
			Color: CategoryColor(task.Category),
		})
	}
	return categories
}

var categoryPalette = []string{
	"#3B82F6",
	"#14B8A6",
	"#F97316",
	"#8B5CF6",
	"#10B981",
	"#F59E0B",
	"#EF4444",
	"#6366F1",
}

// CategoryColor picks a stable palette color from the category name. The hash
// runs over UTF-16 code units with 32-bit shifts, matching the web client.
func CategoryColor(name string) string {
	var h int64
	for _, unit := range utf16Units(name) {
		h = int64(unit) + int64(int32(h)<<5) - h
	}
	if h < 0 {
		h = -h
	}
	return categoryPalette[h%int64(len(categoryPalette))]
}

func utf16Units(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
			continue
		}
		units = append(units, uint16(r))
	}
	return units
}

// Snapshot is a completed task frozen for a daily summary.
type Snapshot struct {
	Title       string
	Description *string
	Category    string
	Priority    string
	CompletedAt time.Time
}

// CompletedOn returns the tasks completed on the given UTC day, taking the
// last update as the completion instant.
func (s *Store) CompletedOn(date string) ([]Snapshot, error) {
	from, to, err := domain.DayBounds(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots := make([]Snapshot, 0)
	for _, task := range s.tasks {
		if !task.Completed {
			continue
		}
		updatedAt := task.UpdatedAt.UTC()
		if updatedAt.Before(from) || !updatedAt.Before(to) {
			continue
		}
		snapshot := Snapshot{
			Title:       task.Title,
			Category:    task.Category,
			Priority:    task.Priority,
			CompletedAt: updatedAt,
		}
		if task.Description != nil {
			value := *task.Description
			snapshot.Description = &value
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}
