package session

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const fileName = "session.yaml"

var ErrNotLoggedIn = errors.New("not logged in, run `taskflow login` first")

type User struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type state struct {
	Token string `yaml:"token"`
	User  User   `yaml:"user"`
}

// Session is the signed-in user of this process, backed by a yaml file.
type Session struct {
	mu    sync.RWMutex
	path  string
	state state
}

// DefaultDir is ~/.taskflow.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskflow"
	}
	return filepath.Join(home, ".taskflow")
}

func New(dir string) *Session {
	return &Session{path: filepath.Join(dir, fileName)}
}

func (s *Session) Path() string {
	return s.path
}

// Load hydrates the session from disk. A missing file leaves it signed out.
func (s *Session) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var loaded state
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = loaded
	s.mu.Unlock()
	return nil
}

// Save stores the token and user after login or registration.
func (s *Session) Save(token string, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(state{Token: token, User: user})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}
	s.state = state{Token: token, User: user}
	return nil
}

// Clear signs out and removes the file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Session) User() (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Token == "" {
		return User{}, ErrNotLoggedIn
	}
	return s.state.User, nil
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}
