package profile

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu           sync.RWMutex
	individual   Individual
	organization Organization
}

// NewMemoryRepository builds an in-memory profile store for tests and
// deployments without a database.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) GetIndividual(_ context.Context) (Individual, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.individual, nil
}

func (r *memoryRepository) PutIndividual(_ context.Context, p Individual) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.individual = p
	return nil
}

func (r *memoryRepository) GetOrganization(_ context.Context) (Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.organization, nil
}

func (r *memoryRepository) PutOrganization(_ context.Context, p Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.organization = p
	return nil
}
