package storage

import (
	"sync"

	"github.com/mycoai/taxotagger-web/internal/models"
)

// RunStore holds completed identification runs in memory, keyed by run
// ID. Runs only live for the lifetime of the server process.
type RunStore struct {
	runs map[string]*models.Run
	mu   sync.RWMutex
}

func New() *RunStore {
	return &RunStore{
		runs: make(map[string]*models.Run),
	}
}

func (s *RunStore) Get(runID string) (*models.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, exists := s.runs[runID]
	return run, exists
}

func (s *RunStore) Set(runID string, run *models.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[runID] = run
}

func (s *RunStore) GetAll() map[string]*models.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.Run, len(s.runs))
	for k, v := range s.runs {
		result[k] = v
	}
	return result
}

func (s *RunStore) Delete(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runID)
}
