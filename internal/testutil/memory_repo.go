package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/wbs/internal/domain"
)

// MemoryDatasetRepo is an in-memory dataset store for service and CLI tests.
// Set SaveErr to make every Save fail.
type MemoryDatasetRepo struct {
	mu      sync.Mutex
	data    *domain.Dataset
	Saves   int
	LoadErr error
	SaveErr error
}

func NewMemoryDatasetRepo(ds *domain.Dataset) *MemoryDatasetRepo {
	if ds == nil {
		ds = domain.NewDataset()
	}
	return &MemoryDatasetRepo{data: ds.Clone()}
}

func (r *MemoryDatasetRepo) Load(ctx context.Context) (*domain.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	return r.data.Clone(), nil
}

func (r *MemoryDatasetRepo) Save(ctx context.Context, ds *domain.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.data = ds.Clone()
	r.Saves++
	return nil
}

// Stored returns a copy of the last saved dataset.
func (r *MemoryDatasetRepo) Stored() *domain.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data.Clone()
}
