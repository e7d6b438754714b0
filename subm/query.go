package subm

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

func (s *SubmissionSrvc) GetSubm(ctx context.Context, id uuid.UUID) (*Submission, error) {
	subm, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrSubmissionNotFound()
		}
		return nil, ErrInternalSE().SetDebug(err)
	}
	return subm, nil
}

func (s *SubmissionSrvc) ListSubms(ctx context.Context, filter ListFilter) (*ListResult, error) {
	if _, ok := Spec(filter.Kind); !ok {
		return nil, ErrUnknownKind(filter.Kind)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	res, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}
	return res, nil
}
