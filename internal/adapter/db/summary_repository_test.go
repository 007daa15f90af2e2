package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/core/domain"
)

const summaryID = "65f1c0ffee0000000000c001"

func summaryRows() *sqlmock.Rows {
	return sqlmock.NewRows(summaryColumns)
}

func TestSummaryRepository_Upsert_ReturnsStoredRecord(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSummaryRepository(db)

	now := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
	completedAt := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO task_summaries .* ON DUPLICATE KEY UPDATE`).
		WithArgs(sqlmock.AnyArg(), ownerID, "2026-03-02", "Great day", 1,
			[]byte(`["Personal"]`), sqlmock.AnyArg(), now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .* FROM task_summaries WHERE user_id = \? AND date = \?`).
		WithArgs(ownerID, "2026-03-02").
		WillReturnRows(summaryRows().AddRow(
			summaryID, ownerID, "2026-03-02", "Great day", 1,
			[]byte(`["Personal"]`),
			[]byte(`[{"title":"Buy milk","category":"Personal","priority":"low","completedAt":"2026-03-02T18:00:00Z"}]`),
			now, now,
		))

	saved, err := repo.Upsert(context.Background(), domain.Summary{
		UserID:     ownerID,
		Date:       "2026-03-02",
		Summary:    "Great day",
		TaskCount:  1,
		Categories: []string{"Personal"},
		CompletedTasks: []domain.CompletedTask{
			{Title: "Buy milk", Category: "Personal", Priority: domain.TaskPriorityLow, CompletedAt: &completedAt},
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)

	assert.Equal(t, summaryID, saved.ID)
	assert.Equal(t, []string{"Personal"}, saved.Categories)
	require.Len(t, saved.CompletedTasks, 1)
	assert.Equal(t, "Buy milk", saved.CompletedTasks[0].Title)
	assert.True(t, completedAt.Equal(*saved.CompletedTasks[0].CompletedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryRepository_Upsert_DuplicateEntryIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSummaryRepository(db)

	mock.ExpectExec(`INSERT INTO task_summaries`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Upsert(context.Background(), domain.Summary{UserID: ownerID, Date: "2026-03-02", Summary: "x"})
	require.ErrorIs(t, err, domain.ErrSummaryConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryRepository_GetByDate_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSummaryRepository(db)

	mock.ExpectQuery(`SELECT .* FROM task_summaries WHERE user_id = \? AND date = \?`).
		WithArgs(ownerID, "2026-03-03").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByDate(context.Background(), ownerID, "2026-03-03")
	require.ErrorIs(t, err, domain.ErrSummaryNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryRepository_ListRecent_UsesLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSummaryRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .* FROM task_summaries WHERE user_id = \? ORDER BY date DESC LIMIT 2`).
		WithArgs(ownerID).
		WillReturnRows(summaryRows().
			AddRow("65f1c0ffee0000000000c002", ownerID, "2026-03-03", "b", 0, []byte(`[]`), []byte(`[]`), now, now).
			AddRow(summaryID, ownerID, "2026-03-02", "a", 0, []byte(`[]`), []byte(`[]`), now, now))

	summaries, err := repo.ListRecent(context.Background(), ownerID, 2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2026-03-03", summaries[0].Date)
	assert.Empty(t, summaries[1].CompletedTasks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryRepository_ListRange_Ascending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSummaryRepository(db)

	mock.ExpectQuery(`SELECT .* FROM task_summaries WHERE user_id = \? AND date >= \? AND date <= \? ORDER BY date ASC`).
		WithArgs(ownerID, "2026-03-01", "2026-03-07").
		WillReturnRows(summaryRows())

	summaries, err := repo.ListRange(context.Background(), ownerID, "2026-03-01", "2026-03-07")
	require.NoError(t, err)
	assert.Empty(t, summaries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryRepository_DeleteByDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSummaryRepository(db)

	mock.ExpectExec(`DELETE FROM task_summaries WHERE user_id = \? AND date = \?`).
		WithArgs(ownerID, "2026-03-02").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteByDate(context.Background(), ownerID, "2026-03-02")
	require.ErrorIs(t, err, domain.ErrSummaryNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO users \(id,name,email,password_hash,created_at,updated_at\)`).
		WithArgs(sqlmock.AnyArg(), "ada", "ada@example.com", "hash", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectQuery(`SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = \?`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.Create(context.Background(), domain.User{
		Name: "ada", Email: "ada@example.com", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.True(t, domain.ValidID(user.ID))

	_, err = repo.Create(context.Background(), domain.User{Email: "ada@example.com"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
