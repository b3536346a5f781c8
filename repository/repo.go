package repository

import (
	"sync"

	"reelforge/entities"
)

// JobStore is the source of truth for status polling. Concurrent readers
// and one writer per job (the executor goroutine) are expected; the mapping
// itself supports concurrent read and insert.
type JobStore interface {
	Create(job *entities.Job)
	Get(id string) (*entities.Job, bool)
	Mutate(id string, fn func(job *entities.Job))
}

type memoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*entities.Job
}

func NewStore() JobStore {
	return &memoryStore{
		jobs: make(map[string]*entities.Job),
	}
}

func (s *memoryStore) Create(job *entities.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job.Clone()
}

// Get returns a copy so pollers never observe a record mid-mutation.
func (s *memoryStore) Get(id string) (*entities.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	return job.Clone(), true
}

func (s *memoryStore) Mutate(id string, fn func(job *entities.Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		fn(job)
	}
}
