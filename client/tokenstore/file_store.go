package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName is the fixed key the token is stored under.
const tokenFileName = "sessionId"

var _ Store = (*FileStore)(nil)

// FileStore keeps the token in a 0600 file in the app data directory,
// surviving process restarts. Operations are single read/write, so
// last-write-wins is the only concurrency behaviour needed.
type FileStore struct {
	path string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: data directory is empty", ErrStorageWrite)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", ErrStorageWrite, err)
	}
	return &FileStore{path: filepath.Join(dir, tokenFileName)}, nil
}

func (s *FileStore) Set(token string) error {
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return nil
}

func (s *FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return nil
}
