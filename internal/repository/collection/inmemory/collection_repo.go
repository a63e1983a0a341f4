package inmemory

import (
	"context"
	"sort"
	"sync"

	"reportTracker/internal/logger"
	"reportTracker/internal/models/task"
	"reportTracker/internal/repository"
)

// Storage keeps every owner's collection in process memory. It backs
// the "inmemory" repository type and the unit tests.
type Storage struct {
	collections map[string][]*task.Task
	mtx         *sync.RWMutex
}

func NewStorage() *Storage {
	return &Storage{
		collections: make(map[string][]*task.Task),
		mtx:         &sync.RWMutex{},
	}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *Storage) ListOwners(ctx context.Context) ([]string, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	owners := make([]string, 0, len(s.collections))
	for owner := range s.collections {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners, nil
}

func (s *Storage) LoadCollection(ctx context.Context, ownerID string) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tasks, ok := s.collections[ownerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCollection(tasks), nil
}

func (s *Storage) SaveCollection(ctx context.Context, ownerID string, tasks []*task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.collections[ownerID] = cloneCollection(tasks)
	return nil
}

func (s *Storage) DeleteCollection(ctx context.Context, ownerID string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.collections[ownerID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.collections, ownerID)
	return nil
}

func (s *Storage) Close() {
	logger.Info("Repository: in-memory storage released")
}

// cloneCollection copies tasks so callers cannot mutate stored state
// behind the repository's back.
func cloneCollection(tasks []*task.Task) []*task.Task {
	out := make([]*task.Task, len(tasks))
	for i, t := range tasks {
		copied := *t
		out[i] = &copied
	}
	return out
}
