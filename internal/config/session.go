package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Session is the shareable session state: the last committed query,
// written on every settled search and read back once at startup so a
// saved session replays the same search.
type Session struct {
	Query string `toml:"query"`
}

// SessionStore persists session state
type SessionStore interface {
	Load() (*Session, error)
	Save(s *Session) error
}

type sessionStore struct {
	filePath string
}

// NewSessionStore creates a session store rooted at the user config directory
func NewSessionStore() SessionStore {
	return &sessionStore{filePath: filepath.Join(defaultConfigDir(), "session.toml")}
}

// NewSessionStoreAt creates a session store using an explicit file path
func NewSessionStoreAt(path string) SessionStore {
	return &sessionStore{filePath: path}
}

// Load reads the session state; a missing file yields an empty session
func (ss *sessionStore) Load() (*Session, error) {
	if _, err := os.Stat(ss.filePath); os.IsNotExist(err) {
		return &Session{}, nil
	}

	data, err := os.ReadFile(ss.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var s Session
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	return &s, nil
}

// Save writes the session state
func (ss *sessionStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(ss.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := os.WriteFile(ss.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}
