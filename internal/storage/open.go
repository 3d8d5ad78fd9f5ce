package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	schemeMemory = "memory:"
	schemeFile   = "file://"
	schemeRedis  = "redis://"
	schemeRediss = "rediss://"
)

// IsRemote reports whether location names a network backend.
func IsRemote(location string) bool {
	return isPostgresURL(location) ||
		strings.HasPrefix(location, schemeRedis) ||
		strings.HasPrefix(location, schemeRediss)
}

// IsPostgres reports whether location is a PostgreSQL URL.
func IsPostgres(location string) bool {
	return isPostgresURL(location)
}

// ExpandPath resolves a leading "~/" against the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// OpenBackend picks a backend from the location's scheme and opens it:
//
//	postgres://, postgresql://   PostgresBackend
//	redis://, rediss://          RedisBackend
//	file://<dir>                 FileBackend
//	memory:                      MemoryBackend
//	anything else                SQLiteBackend at that path
func OpenBackend(location string) (Backend, error) {
	switch {
	case location == schemeMemory:
		return NewMemoryBackend(), nil

	case isPostgresURL(location):
		b := NewPostgresBackend(location)
		if err := b.Open(); err != nil {
			return nil, err
		}
		return b, nil

	case strings.HasPrefix(location, schemeRedis), strings.HasPrefix(location, schemeRediss):
		b, err := NewRedisBackend(location)
		if err != nil {
			return nil, err
		}
		if err := b.Ping(); err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return b, nil

	case strings.HasPrefix(location, schemeFile):
		dir, err := ExpandPath(strings.TrimPrefix(location, schemeFile))
		if err != nil {
			return nil, err
		}
		b := NewFileBackend(dir)
		if err := b.Init(); err != nil {
			return nil, err
		}
		return b, nil

	default:
		path, err := ExpandPath(location)
		if err != nil {
			return nil, err
		}
		b := NewSQLiteBackend(path)
		if err := b.Open(); err != nil {
			return nil, err
		}
		return b, nil
	}
}
