package storage

import "errors"

// ErrKeyNotFound is returned by Backend.Get when nothing is stored under a key.
var ErrKeyNotFound = errors.New("key not found")

// Backend persists opaque documents under namespaced keys. Set replaces the
// whole value atomically: a concurrent Get observes either the old or the new
// document, never a mix.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	// Erase removes the key. Erasing an absent key is not an error.
	Erase(key string) error
	Close() error
	// Location describes where documents live, for diagnostics.
	Location() string
}

// BatchSetter is implemented by backends that can replace several documents
// in one atomic step: after SetMany returns an error, none of the documents
// has changed.
type BatchSetter interface {
	SetMany(docs map[string][]byte) error
}
