package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskflow/internal/client/api"
	"taskflow/internal/core/domain"
)

var (
	ErrInvalidTaskID   = errors.New("invalid task id")
	ErrTaskNotFound    = errors.New("task not found")
	ErrEmptyTitle      = errors.New("task title is required")
	ErrInvalidPriority = errors.New("priority must be high, medium or low")
	ErrEmptyPatch      = errors.New("nothing to update")
)

// SyncState tells whether the server knows about a record.
type SyncState string

const (
	// SyncPending marks a record whose create request is in flight.
	SyncPending SyncState = "pending"
	SyncSynced  SyncState = "synced"
	// SyncFailed marks a record the server never accepted. It stays visible
	// until a successful Load replaces the list.
	SyncFailed SyncState = "failed"
)

type Task struct {
	api.Task
	Sync SyncState `json:"syncState"`
}

// Confirmed reports whether the record carries a server-assigned id.
func (t Task) Confirmed() bool {
	return t.Sync == SyncSynced
}

type Backend interface {
	ListTasks(ctx context.Context) ([]api.Task, error)
	CreateTask(ctx context.Context, draft api.Draft) (api.Task, error)
	UpdateTask(ctx context.Context, id string, patch api.Patch) (api.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

var _ Backend = (*api.Client)(nil)

// Source tells where Load got its list from.
type Source string

const (
	SourceServer Source = "server"
	SourceMirror Source = "mirror"
	SourceEmpty  Source = "empty"
)

// Store keeps the task list in memory and reconciles it with the server.
// Mutations apply locally first; server failures are logged, never returned.
// Network calls run outside the lock and the last response to land wins.
type Store struct {
	mu    sync.Mutex
	tasks []Task

	backend Backend
	mirror  Mirror
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func New(backend Backend, mirror Mirror, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		tasks:   []Task{},
		backend: backend,
		mirror:  mirror,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the list with the server's. When the server cannot be
// reached it falls back to the mirror, then to an empty list.
func (s *Store) Load(ctx context.Context) Source {
	tasks, err := s.backend.ListTasks(ctx)
	if err == nil {
		loaded := make([]Task, 0, len(tasks))
		for _, task := range tasks {
			loaded = append(loaded, Task{Task: task, Sync: SyncSynced})
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.tasks = loaded
		s.persistLocked()
		return SourceServer
	}

	s.logger.Warn("failed to load tasks from server, using local mirror", zap.Error(err))

	mirrored, mirrorErr := s.mirror.Load()

	s.mu.Lock()
	defer s.mu.Unlock()
	if mirrorErr != nil {
		if !errors.Is(mirrorErr, ErrNoMirror) {
			s.logger.Error("failed to read local mirror", zap.Error(mirrorErr))
		}
		s.tasks = []Task{}
		return SourceEmpty
	}
	s.tasks = mirrored
	return SourceMirror
}

// Create prepends an optimistic record under a temporary id, then asks the
// server for the canonical one. A failed create keeps the record, marked
// SyncFailed.
func (s *Store) Create(ctx context.Context, draft api.Draft) (Task, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return Task{}, ErrEmptyTitle
	}
	if draft.Priority == "" {
		draft.Priority = string(domain.TaskPriorityMedium)
	}
	if !domain.TaskPriority(draft.Priority).Valid() {
		return Task{}, ErrInvalidPriority
	}
	if strings.TrimSpace(draft.Category) == "" {
		draft.Category = domain.DefaultTaskCategory
	}

	now := s.now()
	temp := Task{
		Task: api.Task{
			ID:          s.newID(),
			Title:       draft.Title,
			Description: draft.Description,
			Priority:    draft.Priority,
			Category:    draft.Category,
			DueDate:     draft.DueDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Sync: SyncPending,
	}

	s.mu.Lock()
	s.tasks = append([]Task{temp}, s.tasks...)
	s.persistLocked()
	s.mu.Unlock()

	created, err := s.backend.CreateTask(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(temp.ID)
	if err != nil {
		s.logger.Warn("failed to save task to server", zap.String("temp_id", temp.ID), zap.Error(err))
		if idx < 0 {
			return temp, nil
		}
		s.tasks[idx].Sync = SyncFailed
		s.persistLocked()
		return s.tasks[idx], nil
	}

	confirmed := Task{Task: created, Sync: SyncSynced}
	if idx < 0 {
		s.logger.Warn("created task was removed locally before the server answered",
			zap.String("temp_id", temp.ID), zap.String("task_id", created.ID))
		return confirmed, nil
	}
	s.tasks[idx] = confirmed
	s.persistLocked()
	return confirmed, nil
}

// Update merges the patch and stamps updatedAt before calling the server. On
// success only the patched fields and updatedAt are taken from the server's
// record; on failure only the patched fields are restored. Records the server never
// confirmed are updated locally only.
func (s *Store) Update(ctx context.Context, id string, patch api.Patch) (Task, error) {
	if !validTaskID(id) {
		s.logger.Error("invalid task id for update", zap.String("task_id", id))
		return Task{}, ErrInvalidTaskID
	}
	if patch.IsEmpty() {
		return Task{}, ErrEmptyPatch
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return Task{}, ErrEmptyTitle
	}
	if patch.Priority != nil && !domain.TaskPriority(*patch.Priority).Valid() {
		return Task{}, ErrInvalidPriority
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return Task{}, ErrTaskNotFound
	}

	pending := newPendingMutation(s.tasks[idx], patch)
	applyPatch(&s.tasks[idx].Task, patch)
	s.tasks[idx].UpdatedAt = s.now()
	optimistic := s.tasks[idx]
	s.persistLocked()
	s.mu.Unlock()

	if !optimistic.Confirmed() {
		return optimistic, nil
	}

	updated, err := s.backend.UpdateTask(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx = s.indexLocked(id)
	if err != nil {
		s.logger.Warn("failed to update task on server", zap.String("task_id", id), zap.Error(err))
		if idx < 0 {
			return optimistic, nil
		}
		pending.revert(&s.tasks[idx].Task)
		s.persistLocked()
		return s.tasks[idx], nil
	}

	if idx < 0 {
		return Task{Task: updated, Sync: SyncSynced}, nil
	}
	pending.adopt(&s.tasks[idx].Task, updated)
	s.tasks[idx].Sync = SyncSynced
	s.persistLocked()
	return cloneTask(s.tasks[idx]), nil
}

// Toggle flips the completion flag.
func (s *Store) Toggle(ctx context.Context, id string) (Task, error) {
	if !validTaskID(id) {
		s.logger.Error("invalid task id for toggle", zap.String("task_id", id))
		return Task{}, ErrInvalidTaskID
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return Task{}, ErrTaskNotFound
	}
	completed := !s.tasks[idx].Completed
	s.mu.Unlock()

	return s.Update(ctx, id, api.Patch{Completed: &completed})
}

// Delete removes the record at once and puts it back at the front of the
// list if the server refuses.
func (s *Store) Delete(ctx context.Context, id string) error {
	if !validTaskID(id) {
		s.logger.Error("invalid task id for deletion", zap.String("task_id", id))
		return ErrInvalidTaskID
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrTaskNotFound
	}
	removed := s.tasks[idx]
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	s.persistLocked()
	s.mu.Unlock()

	if !removed.Confirmed() {
		return nil
	}

	if err := s.backend.DeleteTask(ctx, id); err != nil {
		s.logger.Warn("failed to delete task from server", zap.String("task_id", id), zap.Error(err))

		s.mu.Lock()
		s.tasks = append([]Task{removed}, s.tasks...)
		s.persistLocked()
		s.mu.Unlock()
	}
	return nil
}

// Tasks returns a copy of the full list, newest first.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return Task{}, false
	}
	return cloneTask(s.tasks[idx]), true
}

func (s *Store) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() {
	if err := s.mirror.Save(s.tasks); err != nil {
		s.logger.Error("failed to write local mirror", zap.Error(err))
	}
}

// validTaskID accepts server ids and the temporary ids handed out by Create.
func validTaskID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" || id == "undefined" {
		return false
	}
	if domain.ValidID(id) {
		return true
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, cloneTask(task))
	}
	return out
}

func cloneTask(task Task) Task {
	if task.Description != nil {
		value := *task.Description
		task.Description = &value
	}
	if task.DueDate != nil {
		value := *task.DueDate
		task.DueDate = &value
	}
	return task
}
