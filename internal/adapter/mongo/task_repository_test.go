package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskflow/internal/core/domain"
)

func TestTaskUpdateDocument_SetsAndUnsets(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	title := "Buy oat milk"
	priority := domain.TaskPriorityHigh

	update := taskUpdateDocument(domain.UpdateTaskInput{
		Title:          &title,
		Priority:       &priority,
		DescriptionSet: true,
		DueDateSet:     true,
	}, now)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, now, set["updatedAt"])
	assert.Equal(t, "Buy oat milk", set["title"])
	assert.Equal(t, "high", set["priority"])
	assert.NotContains(t, set, "completed")

	unset, ok := update["$unset"].(bson.M)
	require.True(t, ok)
	assert.Contains(t, unset, "description")
	assert.Contains(t, unset, "dueDate")
}

func TestTaskUpdateDocument_NoUnsetWhenNothingCleared(t *testing.T) {
	completed := true
	update := taskUpdateDocument(domain.UpdateTaskInput{Completed: &completed}, time.Now())

	assert.NotContains(t, update, "$unset")
	assert.Equal(t, true, update["$set"].(bson.M)["completed"])
}

func TestSummaryDocument_ToDomain_DefaultsEmptyCollections(t *testing.T) {
	oid := primitive.NewObjectID()
	summary := summaryDocument{ID: oid, UserID: "u", Date: "2026-03-02", Summary: "ok"}.toDomain()

	assert.Equal(t, oid.Hex(), summary.ID)
	assert.NotNil(t, summary.Categories)
	assert.NotNil(t, summary.CompletedTasks)
	assert.Empty(t, summary.CompletedTasks)
}
