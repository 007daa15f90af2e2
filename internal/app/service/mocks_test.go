package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"taskflow/internal/core/domain"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) ListCompletedBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, userID, from, to)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) Update(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput, updatedAt time.Time) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID, input, updatedAt)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) Delete(ctx context.Context, userID, taskID string) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

type summaryRepositoryMock struct {
	mock.Mock
}

func (m *summaryRepositoryMock) ListRecent(ctx context.Context, userID string, limit int) ([]domain.Summary, error) {
	args := m.Called(ctx, userID, limit)
	summaries, _ := args.Get(0).([]domain.Summary)
	return summaries, args.Error(1)
}

func (m *summaryRepositoryMock) GetByDate(ctx context.Context, userID, date string) (domain.Summary, error) {
	args := m.Called(ctx, userID, date)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func (m *summaryRepositoryMock) Upsert(ctx context.Context, summary domain.Summary) (domain.Summary, error) {
	args := m.Called(ctx, summary)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func (m *summaryRepositoryMock) DeleteByDate(ctx context.Context, userID, date string) error {
	return m.Called(ctx, userID, date).Error(0)
}

func (m *summaryRepositoryMock) ListRange(ctx context.Context, userID, startDate, endDate string) ([]domain.Summary, error) {
	args := m.Called(ctx, userID, startDate, endDate)
	summaries, _ := args.Get(0).([]domain.Summary)
	return summaries, args.Error(1)
}

type userRepositoryMock struct {
	mock.Mock
}

func (m *userRepositoryMock) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

type textGeneratorMock struct {
	mock.Mock
}

func (m *textGeneratorMock) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type tokenIssuerStub struct {
	issued []domain.Identity
}

func (s *tokenIssuerStub) Issue(identity domain.Identity) (string, error) {
	s.issued = append(s.issued, identity)
	return "token-for-" + identity.UserID, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}
