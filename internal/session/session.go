package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tapppp/storeorders/internal/models"
)

// Session holds the credentials and store identity read by every
// network call. It is passed explicitly, components never reach into
// ambient storage.
type Session struct {
	StoreID       string `json:"storeId"`
	Token         string `json:"token"`
	StoreName     string `json:"storeName"`
	StoreImageURL string `json:"storeImg"`
}

// Store persists one session on disk between runs.
type Store struct {
	path string
}

// NewStore creates session store backed by file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save writes the session to disk, creating parent directories as needed
func (s *Store) Save(sess Session) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Load reads stored session. Returns models.ErrNoSession when nothing
// has been saved yet.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, models.ErrNoSession
		}
		return Session{}, err
	}

	sess := Session{}
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, err
	}

	return sess, nil
}

// Clear removes the stored session. Clearing a store that holds
// nothing is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
