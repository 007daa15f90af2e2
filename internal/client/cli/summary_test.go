package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/client/store"
)

func TestSummaryRequest_FreezesSnapshots(t *testing.T) {
	at := time.Date(2026, 3, 2, 19, 0, 0, 0, time.FixedZone("CET", 3600))
	note := "2 litres"
	snapshots := []store.Snapshot{
		{Title: "Ship release", Category: "Work", Priority: "high", CompletedAt: at},
		{Title: "Buy milk", Description: &note, Category: "Personal", Priority: "low", CompletedAt: at},
		{Title: "Review PR", Category: "Work", Priority: "medium", CompletedAt: at},
	}

	req := summaryRequest("2026-03-02", "  Good day  ", snapshots)

	assert.Equal(t, "2026-03-02", req.Date)
	assert.Equal(t, "Good day", req.Summary)
	require.NotNil(t, req.TaskCount)
	assert.Equal(t, 3, *req.TaskCount)
	assert.Equal(t, []string{"Work", "Personal"}, req.Categories)
	require.Len(t, req.CompletedTasks, 3)
	assert.Equal(t, "2026-03-02T18:00:00Z", *req.CompletedTasks[0].CompletedAt)
	assert.Equal(t, &note, req.CompletedTasks[1].Description)
}

func TestSummaryRequest_NoSnapshots(t *testing.T) {
	req := summaryRequest("2026-03-02", "Rest day", nil)

	require.NotNil(t, req.TaskCount)
	assert.Zero(t, *req.TaskCount)
	assert.NotNil(t, req.Categories)
	assert.Empty(t, req.Categories)
	assert.NotNil(t, req.CompletedTasks)
}
