package subm

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemRepo is a mutex-guarded in-memory submission store used in tests and
// local development.
type InMemRepo struct {
	mu    sync.RWMutex
	subms map[uuid.UUID]Submission
}

func NewInMemRepo() *InMemRepo {
	return &InMemRepo{subms: make(map[uuid.UUID]Submission)}
}

func (r *InMemRepo) Store(ctx context.Context, subm Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subms[subm.ID] = subm
	return nil
}

func (r *InMemRepo) Get(ctx context.Context, id uuid.UUID) (*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subm, ok := r.subms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &subm, nil
}

func (r *InMemRepo) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Submission, 0, len(r.subms))
	res := &ListResult{}
	for _, subm := range r.subms {
		if subm.Kind != filter.Kind {
			continue
		}
		switch subm.ProcessingStatus {
		case StatusCompleted:
			res.TotalCompleted++
		case StatusFailed:
			res.TotalFailed++
		}
		if filter.ReviewStatus != "" && subm.ReviewStatus != filter.ReviewStatus {
			continue
		}
		matched = append(matched, subm)
	}
	sortSubmsByCreatedDesc(matched)

	res.Total = len(matched)
	res.Subms = paginate(matched, filter.Page, filter.Limit)
	return res, nil
}

func (r *InMemRepo) Patch(ctx context.Context, id uuid.UUID, patch Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	subm, ok := r.subms[id]
	if !ok {
		return ErrNotFound
	}
	if patch.ProcessingStatus != nil {
		subm.ProcessingStatus = *patch.ProcessingStatus
	}
	if patch.ProcessingError != nil {
		subm.ProcessingError = *patch.ProcessingError
	}
	if patch.AttachmentRef != nil {
		subm.AttachmentRef = *patch.AttachmentRef
	}
	if patch.ReviewStatus != nil {
		subm.ReviewStatus = *patch.ReviewStatus
	}
	subm.UpdatedAt = time.Now()
	r.subms[id] = subm
	return nil
}

func (r *InMemRepo) MarkStuckIfPending(ctx context.Context, id uuid.UUID, errMsg string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	subm, ok := r.subms[id]
	if !ok {
		return false, ErrNotFound
	}
	if subm.ProcessingStatus != StatusPending {
		return false, nil
	}
	subm.ProcessingStatus = StatusStuck
	subm.ProcessingError = errMsg
	subm.UpdatedAt = time.Now()
	r.subms[id] = subm
	return true, nil
}

func (r *InMemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subms[id]; !ok {
		return ErrNotFound
	}
	delete(r.subms, id)
	return nil
}

func sortSubmsByCreatedDesc(subms []Submission) {
	sort.Slice(subms, func(i, j int) bool {
		return subms[i].CreatedAt.After(subms[j].CreatedAt)
	})
}

func paginate(subms []Submission, page int, limit int) []Submission {
	if limit <= 0 {
		return subms
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(subms) {
		return []Submission{}
	}
	end := start + limit
	if end > len(subms) {
		end = len(subms)
	}
	return subms[start:end]
}
