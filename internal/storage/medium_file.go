package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileMedium stores each key as a JSON file inside a data directory. Writes
// go through a temp file and rename, so readers only ever observe a complete
// value.
type FileMedium struct {
	dir string
}

// NewFileMedium creates the data directory if needed.
func NewFileMedium(dir string) (*FileMedium, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileMedium{dir: dir}, nil
}

func (m *FileMedium) path(key string) string {
	return filepath.Join(m.dir, key+".json")
}

// Get reads the value for key, reporting absence when the file is missing.
func (m *FileMedium) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(m.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set atomically replaces the value for key.
func (m *FileMedium) Set(ctx context.Context, key, value string) error {
	tmp, err := os.CreateTemp(m.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, m.path(key)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Delete removes the value for key; deleting an absent key is not an error.
func (m *FileMedium) Delete(ctx context.Context, key string) error {
	err := os.Remove(m.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Ping verifies the data directory is still reachable.
func (m *FileMedium) Ping(ctx context.Context) error {
	_, err := os.Stat(m.dir)
	return err
}
