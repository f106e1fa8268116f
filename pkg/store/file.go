package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps each record as a JSON file inside a directory.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore creates a file store in dir.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// fileEntry wraps stored data with metadata.
type fileEntry struct {
	Key     string    `json:"key"`
	Data    []byte    `json:"data"`
	SavedAt time.Time `json:"saved_at"`
}

// Get retrieves a record. Unreadable envelopes count as a miss.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set writes a record atomically through a temp file and rename.
func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	raw, err := json.Marshal(fileEntry{Key: key, Data: data, SavedAt: s.now().UTC()})
	if err != nil {
		return err
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".board-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a record.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file stores.
func (s *FileStore) Close() error {
	return nil
}

// Location returns the file that holds key.
func (s *FileStore) Location(key string) string {
	return s.path(key)
}

// path converts a key to a file path, using the first two hash characters
// as a subdirectory.
func (s *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

var (
	_ Store   = (*FileStore)(nil)
	_ Locator = (*FileStore)(nil)
)
