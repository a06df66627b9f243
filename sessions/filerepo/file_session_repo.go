// Package filesessionrepo persists session entries as a JSON object in a
// single file readable only by the current user.
package filesessionrepo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/go-mall-client/sessions"
)

var _ sessions.Repo = (*FileSessionRepo)(nil)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

type FileSessionRepo struct {
	path string
	lock sync.Mutex
}

func NewFileSessionRepo(path string) (*FileSessionRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("[NewFileSessionRepo] session file path is required")
	}
	return &FileSessionRepo{path: path}, nil
}

// Path returns the backing file location
func (fr *FileSessionRepo) Path() string {
	return fr.path
}

func (fr *FileSessionRepo) Get(key string) (string, bool, error) {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	values, err := fr.read()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (fr *FileSessionRepo) SetAll(entries map[string]string) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	values, err := fr.read()
	if err != nil {
		return err
	}
	for k, v := range entries {
		values[k] = v
	}
	return fr.write(values)
}

func (fr *FileSessionRepo) Delete(keys ...string) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	values, err := fr.read()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(values, k)
	}
	if len(values) == 0 {
		if err := os.Remove(fr.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("[FileSessionRepo Delete] %w", err)
		}
		return nil
	}
	return fr.write(values)
}

func (fr *FileSessionRepo) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(fr.path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[FileSessionRepo read] %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("[FileSessionRepo read] corrupt session file %s: %w", fr.path, err)
	}
	return values, nil
}

// write replaces the file atomically via a temp file in the same directory
func (fr *FileSessionRepo) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("[FileSessionRepo write] %w", err)
	}

	dir := filepath.Dir(fr.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("[FileSessionRepo write] %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("[FileSessionRepo write] %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileSessionRepo write] %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileSessionRepo write] %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[FileSessionRepo write] %w", err)
	}
	if err := os.Rename(tmp.Name(), fr.path); err != nil {
		return fmt.Errorf("[FileSessionRepo write] %w", err)
	}
	return nil
}
