package subm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiplogix/backend/metrics"
)

type SubmitParams struct {
	Kind    Kind
	Payload Payload

	// AttachmentRef is the store-relative path of the already-saved upload,
	// empty when the form carried no file.
	AttachmentRef string
}

// Submit validates the submission, persists it with a pending processing
// status and schedules exactly one background unit for it. It returns as
// soon as the record is stored; compression and email latency never reach
// the caller.
func (s *SubmissionSrvc) Submit(ctx context.Context, params SubmitParams) (*Submission, error) {
	spec, ok := Spec(params.Kind)
	if !ok {
		return nil, ErrUnknownKind(params.Kind)
	}

	for _, field := range spec.Fields {
		if field.Required && params.Payload.Get(field.Name) == "" {
			return nil, ErrMissingField(field.Name)
		}
	}

	if spec.RequiresAttachment && params.AttachmentRef == "" {
		return nil, ErrAttachmentRequired()
	}
	if params.AttachmentRef != "" && !s.files.Exists(params.AttachmentRef) {
		return nil, ErrAttachmentNotStored()
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}

	now := time.Now()
	subm := Submission{
		ID:               id,
		Kind:             params.Kind,
		Payload:          params.Payload,
		AttachmentRef:    params.AttachmentRef,
		ReviewStatus:     spec.ReviewStatuses[0],
		ProcessingStatus: StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Store(ctx, subm); err != nil {
		return nil, ErrStoreUnavailable().SetDebug(err)
	}

	metrics.SubmissionsReceived.WithLabelValues(string(subm.Kind)).Inc()
	s.logger.Info("submission accepted",
		"subm_id", subm.ID, "kind", subm.Kind)

	// detached from the request scope: the caller gets its response now,
	// the unit writes its outcome to the store later
	s.pool.Submit(func() { s.process(subm) })

	return &subm, nil
}
