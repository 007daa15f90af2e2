//go:build integration
// +build integration

package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"

	"taskflow/internal/config"
	"taskflow/internal/core/domain"
)

type RepositoryIntegrationSuite struct {
	suite.Suite

	client *mongo.Client
	db     *mongo.Database
}

func TestRepositoryIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RepositoryIntegrationSuite))
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://127.0.0.1:27017"
	}

	client, db, err := Connect(context.Background(), &config.Config{MongoURI: uri, MongoDatabase: "taskflow_test"})
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mongo: %v", err)
	}
	s.client = client
	s.db = db
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.Require().NoError(s.db.Drop(context.Background()))
	}
	if s.client != nil {
		s.Require().NoError(s.client.Disconnect(context.Background()))
	}
}

func (s *RepositoryIntegrationSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.db.Drop(ctx))
	s.Require().NoError(EnsureIndexes(ctx, s.db))
}

func (s *RepositoryIntegrationSuite) TestSummaryUpsert_KeepsOneRecordPerDate() {
	ctx := context.Background()
	repo := NewSummaryRepository(s.db)
	first := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)

	_, err := repo.Upsert(ctx, domain.Summary{UserID: "u1", Date: "2026-03-02", Summary: "first", TaskCount: 1, CreatedAt: first, UpdatedAt: first})
	s.Require().NoError(err)
	second, err := repo.Upsert(ctx, domain.Summary{UserID: "u1", Date: "2026-03-02", Summary: "second", TaskCount: 2, CreatedAt: first.Add(time.Hour), UpdatedAt: first.Add(time.Hour)})
	s.Require().NoError(err)

	count, err := s.db.Collection(summariesCollection).CountDocuments(ctx, map[string]string{"userId": "u1"})
	s.Require().NoError(err)
	s.Require().Equal(int64(1), count)
	s.Require().Equal("second", second.Summary)
	s.Require().Equal(2, second.TaskCount)
	s.Require().True(first.Equal(second.CreatedAt))
}

func (s *RepositoryIntegrationSuite) TestTaskUpdate_ForeignOwnerIsNotFound() {
	ctx := context.Background()
	repo := NewTaskRepository(s.db)
	now := time.Now().UTC().Truncate(time.Millisecond)

	task, err := repo.Create(ctx, domain.Task{UserID: "owner", Title: "Buy milk", Priority: domain.TaskPriorityLow, Category: "Personal", CreatedAt: now, UpdatedAt: now})
	s.Require().NoError(err)

	completed := true
	_, err = repo.Update(ctx, "intruder", task.ID, domain.UpdateTaskInput{Completed: &completed}, now)
	s.Require().ErrorIs(err, domain.ErrTaskNotFound)

	s.Require().NoError(repo.Delete(ctx, "owner", task.ID))
	s.Require().ErrorIs(repo.Delete(ctx, "owner", task.ID), domain.ErrTaskNotFound)
}

func (s *RepositoryIntegrationSuite) TestUserCreate_DuplicateEmail() {
	ctx := context.Background()
	repo := NewUserRepository(s.db)

	_, err := repo.Create(ctx, domain.User{Name: "a", Email: "a@example.com", PasswordHash: "h"})
	s.Require().NoError(err)
	_, err = repo.Create(ctx, domain.User{Name: "b", Email: "a@example.com", PasswordHash: "h"})
	s.Require().ErrorIs(err, domain.ErrEmailTaken)
}
