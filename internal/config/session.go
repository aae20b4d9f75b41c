package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// Session is the state kept between runs: the deck the dealer reuses.
type Session struct {
	DeckID    string    `toml:"deck_id"`
	UpdatedAt time.Time `toml:"updated_at"`
}

// GetSessionFilePath returns the path to the session file
func GetSessionFilePath() string {
	return filepath.Join(GetXDGDataHome(), appName, "session.toml")
}

// FileSessionStore persists the Session as TOML.
type FileSessionStore struct {
	Path string

	mu  sync.Mutex
	now func() time.Time
}

// NewFileSessionStore returns a store at path, or at GetSessionFilePath when
// path is empty.
func NewFileSessionStore(path string) *FileSessionStore {
	if path == "" {
		path = GetSessionFilePath()
	}
	return &FileSessionStore{Path: path, now: time.Now}
}

// Load reads the session file. A missing file yields an empty Session.
func (s *FileSessionStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileSessionStore) load() (*Session, error) {
	var session Session
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return &session, nil
	}
	if _, err := toml.DecodeFile(s.Path, &session); err != nil {
		return nil, fmt.Errorf("error decoding session file: %w", err)
	}
	return &session, nil
}

func (s *FileSessionStore) save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}

	file, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("error creating session file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(session); err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}
	return nil
}

// DeckID returns the persisted deck id, or "" when none is stored.
func (s *FileSessionStore) DeckID() (string, error) {
	session, err := s.Load()
	if err != nil {
		return "", err
	}
	return session.DeckID, nil
}

// SetDeckID persists the deck id.
func (s *FileSessionStore) SetDeckID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load()
	if err != nil {
		return err
	}
	session.DeckID = id
	session.UpdatedAt = s.now().UTC().Truncate(time.Second)
	return s.save(session)
}

// Clear forgets the persisted deck.
func (s *FileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing session file: %w", err)
	}
	return nil
}
