package job

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Repo interface {
	Store(ctx context.Context, job Job) error
	Get(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context, activeOnly bool) ([]Job, error)
}

type InMemRepo struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]Job
}

func NewInMemRepo() *InMemRepo {
	return &InMemRepo{jobs: make(map[uuid.UUID]Job)}
}

func (r *InMemRepo) Store(ctx context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	return nil
}

func (r *InMemRepo) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &job, nil
}

func (r *InMemRepo) List(ctx context.Context, activeOnly bool) ([]Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	jobs := make([]Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		if activeOnly && !job.IsActive {
			continue
		}
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}
