// Package manifest implements the run manifest store.
package manifest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.slipway.dev/slipway/internal/core/domain"
	"go.slipway.dev/slipway/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RunStore = (*Store)(nil)

// Store implements ports.RunStore using a flat JSON file keyed by
// archive name. A record is written only after a fully successful run,
// so the manifest always describes complete artifacts.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.RunRecord
}

// NewStore creates a RunStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.RunRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read run manifest")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal run manifest")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal run manifest")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for run manifest")
	}

	//nolint:gosec // path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write run manifest")
	}

	return nil
}

// Get retrieves the latest record for the given archive name.
func (s *Store) Get(archive string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[archive]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the record.
func (s *Store) Put(record domain.RunRecord) error {
	s.mu.Lock()
	s.cache[record.Archive] = record
	s.mu.Unlock()

	return s.save()
}
