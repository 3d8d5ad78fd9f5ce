package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/tally/internal/constants"
	apperrors "github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
)

// Store loads and saves the application's JSON documents through a Backend.
//
// Loads never fail on bad data: a missing, unparsable or shape-invalid
// document is replaced by its schema default. Only backend I/O failures are
// returned as errors.
type Store struct {
	backend Backend
}

// New returns a Store that reads and writes through backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// document is implemented by every persisted document type.
type document interface {
	Normalize()
	Validate() error
}

func loadDocument[T any, P interface {
	*T
	document
}](b Backend, key string, def func() T) (T, error) {
	data, err := b.Get(key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return def(), nil
		}
		return def(), fmt.Errorf("failed to read %s: %w", key, err)
	}

	doc, err := decode[T, P](data)
	if err != nil {
		logger.Warn("Stored document is unreadable, using defaults", "key", key, "error", err)
		return def(), nil
	}
	return doc, nil
}

func decode[T any, P interface {
	*T
	document
}](data []byte) (T, error) {
	var doc T
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return doc, errors.New("not a JSON object")
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return doc, fmt.Errorf("corrupt JSON: %w", err)
	}
	P(&doc).Normalize()
	if err := P(&doc).Validate(); err != nil {
		return doc, fmt.Errorf("failed validation: %w", err)
	}
	return doc, nil
}

// Check reports why the stored bytes for key would be replaced by defaults
// on load, or nil when they decode cleanly.
func Check(key string, data []byte) error {
	var err error
	switch key {
	case constants.KeyEngagement:
		_, err = decode[models.EngagementData](data)
	case constants.KeyGoals:
		_, err = decode[models.GoalsData](data)
	case constants.KeySkills:
		_, err = decode[models.SkillsData](data)
	default:
		return fmt.Errorf("unknown document key %q", key)
	}
	return err
}

// Encode renders a document exactly as it is persisted.
func Encode(doc any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return data, nil
}

func (s *Store) save(key string, doc any) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.backend.Set(key, data); err != nil {
		logger.Error("Failed to write document", "key", key, "error", err)
		return fmt.Errorf("%w: %s: %v", apperrors.ErrStorageWrite, key, err)
	}
	return nil
}

// Write is one encoded document waiting to be persisted.
type Write struct {
	Key  string
	Data []byte
}

// SaveBatch persists writes together. A BatchSetter backend stores all of
// them or none; other backends write them in order and stop at the first
// failure.
func (s *Store) SaveBatch(writes []Write) error {
	if len(writes) == 0 {
		return nil
	}
	if bs, ok := s.backend.(BatchSetter); ok && len(writes) > 1 {
		docs := make(map[string][]byte, len(writes))
		keys := make([]string, 0, len(writes))
		for _, w := range writes {
			docs[w.Key] = w.Data
			keys = append(keys, w.Key)
		}
		if err := bs.SetMany(docs); err != nil {
			logger.Error("Failed to write documents", "keys", keys, "error", err)
			return fmt.Errorf("%w: %v: %v", apperrors.ErrStorageWrite, keys, err)
		}
		return nil
	}
	for _, w := range writes {
		if err := s.backend.Set(w.Key, w.Data); err != nil {
			logger.Error("Failed to write document", "key", w.Key, "error", err)
			return fmt.Errorf("%w: %s: %v", apperrors.ErrStorageWrite, w.Key, err)
		}
	}
	return nil
}

func (s *Store) LoadEngagement() (models.EngagementData, error) {
	return loadDocument[models.EngagementData](s.backend, constants.KeyEngagement, models.DefaultEngagement)
}

func (s *Store) SaveEngagement(doc models.EngagementData) error {
	return s.save(constants.KeyEngagement, doc)
}

func (s *Store) LoadGoals() (models.GoalsData, error) {
	return loadDocument[models.GoalsData](s.backend, constants.KeyGoals, models.DefaultGoals)
}

func (s *Store) SaveGoals(doc models.GoalsData) error {
	return s.save(constants.KeyGoals, doc)
}

func (s *Store) LoadSkills() (models.SkillsData, error) {
	return loadDocument[models.SkillsData](s.backend, constants.KeySkills, models.DefaultSkills)
}

func (s *Store) SaveSkills(doc models.SkillsData) error {
	return s.save(constants.KeySkills, doc)
}

// Erase removes a single document.
func (s *Store) Erase(key string) error {
	if err := s.backend.Erase(key); err != nil {
		return fmt.Errorf("failed to erase %s: %w", key, err)
	}
	return nil
}

type batchEraser interface {
	EraseMany(keys ...string) error
}

// EraseAll removes every document the application owns.
func (s *Store) EraseAll() error {
	if be, ok := s.backend.(batchEraser); ok {
		if err := be.EraseMany(constants.DocumentKeys...); err != nil {
			return fmt.Errorf("failed to erase documents: %w", err)
		}
		logger.Info("All documents erased", "location", s.backend.Location())
		return nil
	}
	for _, key := range constants.DocumentKeys {
		if err := s.Erase(key); err != nil {
			return err
		}
	}
	logger.Info("All documents erased", "location", s.backend.Location())
	return nil
}
