package prefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileBackend stores preferences as a flat YAML map.
// Every Load re-reads the file so edits made by other processes are seen.
type FileBackend struct {
	mu   sync.Mutex
	path string
}

// NewFileBackend returns a backend for the YAML file at path.
// The file is created on the first Save.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (f *FileBackend) Load(_ context.Context, key Key) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[string(key)]
	return v, ok, nil
}

func (f *FileBackend) Save(_ context.Context, key Key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[string(key)] = value
	return f.write(values)
}

func (f *FileBackend) Close() error { return nil }

// Path returns the YAML file path.
func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading preferences file: %w", err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing preferences file: %w", err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

// write replaces the file atomically via a temp file and rename.
func (f *FileBackend) write(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming preferences file: %w", err)
	}
	return nil
}
