package dataset

import (
	"log/slog"
	"sync"
)

// Store caches loaded tables by path for the lifetime of the process.
// Repeated loads of the same path return the same immutable table without
// touching the filesystem again, so any number of concurrent readers can
// share it without coordination.
type Store struct {
	logger *slog.Logger

	mu     sync.Mutex
	tables map[string]*Table
	stats  map[string]LoadStats
}

// NewStore creates an empty store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		logger: logger.With(slog.String("component", "dataset_store")),
		tables: make(map[string]*Table),
		stats:  make(map[string]LoadStats),
	}
}

// Load returns the cached table for path, loading it on first use.
func (s *Store) Load(path string) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tables[path]; ok {
		return t, nil
	}

	t, stats, err := Load(path, s.logger)
	if err != nil {
		return nil, err
	}
	s.tables[path] = t
	s.stats[path] = stats
	return t, nil
}

// Stats returns the load statistics for an already-loaded path.
func (s *Store) Stats(path string) (LoadStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.stats[path]
	return stats, ok
}
