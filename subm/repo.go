package subm

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is the repo-level sentinel for a missing submission.
var ErrNotFound = errors.New("submission not found")

// Patch is a partial update of a submission. Nil fields are left untouched.
// The store applies patches with last-write-wins semantics; the stuck timer
// and the background unit's terminal write are deliberately not ordered
// relative to each other.
type Patch struct {
	ProcessingStatus *Status
	ProcessingError  *string
	AttachmentRef    *string
	ReviewStatus     *string
}

type ListFilter struct {
	Kind         Kind
	ReviewStatus string // empty matches all
	Page         int    // 1-based
	Limit        int
}

type ListResult struct {
	Subms          []Submission
	Total          int
	TotalCompleted int
	TotalFailed    int
}

type Repo interface {
	Store(ctx context.Context, subm Submission) error
	Get(ctx context.Context, id uuid.UUID) (*Submission, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Patch(ctx context.Context, id uuid.UUID, patch Patch) error

	// MarkStuckIfPending flags the submission as stuck only while it is
	// still pending. Once a terminal status has been written the stuck
	// write is suppressed; it reports whether the flag was applied.
	MarkStuckIfPending(ctx context.Context, id uuid.UUID, errMsg string) (bool, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
