package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var keyReplacer = strings.NewReplacer(":", "_", "/", "_", "\\", "_")

// FileBackend stores each document as <dir>/<key>.json. Writes go to a temp
// file in the same directory and are renamed over the target, so readers see
// either the previous or the new document.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend storing one JSON file per key in dir.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Init creates the storage directory.
func (b *FileBackend) Init() error {
	if err := os.MkdirAll(b.dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, keyReplacer.Replace(key)+".json")
}

func (b *FileBackend) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

func (b *FileBackend) Set(key string, data []byte) error {
	if err := b.Init(); err != nil {
		return err
	}

	target := b.path(key)
	tmp, err := os.CreateTemp(b.dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close document: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}

func (b *FileBackend) Erase(key string) error {
	if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	return nil
}

func (b *FileBackend) Close() error     { return nil }
func (b *FileBackend) Location() string { return b.dir }
