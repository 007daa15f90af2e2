package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// MirrorKey names the local copy of the task list.
const MirrorKey = "taskflow-tasks"

var ErrNoMirror = errors.New("no local mirror")

// Mirror keeps a copy of the last known list for offline reads.
type Mirror interface {
	Load() ([]Task, error)
	Save(tasks []Task) error
}

// FileMirror stores the list as JSON under a data directory.
type FileMirror struct {
	path string
}

func NewFileMirror(dir string) *FileMirror {
	return &FileMirror{path: filepath.Join(dir, MirrorKey+".json")}
}

func (m *FileMirror) Path() string {
	return m.path
}

func (m *FileMirror) Load() ([]Task, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoMirror
		}
		return nil, err
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.path, err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// Save replaces the file atomically.
func (m *FileMirror) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(m.path), MirrorKey+"-*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), m.path)
}

// MemoryMirror keeps the copy in memory.
type MemoryMirror struct {
	mu    sync.Mutex
	tasks []Task
	saved bool
}

func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{}
}

func (m *MemoryMirror) Load() ([]Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return nil, ErrNoMirror
	}
	return cloneTasks(m.tasks), nil
}

func (m *MemoryMirror) Save(tasks []Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = cloneTasks(tasks)
	m.saved = true
	return nil
}
