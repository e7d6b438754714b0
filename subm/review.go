package subm

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// SetReviewStatus updates the admin triage status, validated against the
// kind's allowed set.
func (s *SubmissionSrvc) SetReviewStatus(ctx context.Context, id uuid.UUID, status string) (*Submission, error) {
	subm, err := s.GetSubm(ctx, id)
	if err != nil {
		return nil, err
	}
	spec, _ := Spec(subm.Kind)
	if !spec.AllowsReviewStatus(status) {
		return nil, ErrInvalidReviewStatus(status)
	}
	if err := s.repo.Patch(ctx, id, Patch{ReviewStatus: &status}); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrSubmissionNotFound()
		}
		return nil, ErrInternalSE().SetDebug(err)
	}
	subm.ReviewStatus = status
	return subm, nil
}

// DeleteSubm removes the record and its stored attachment.
func (s *SubmissionSrvc) DeleteSubm(ctx context.Context, id uuid.UUID) error {
	subm, err := s.GetSubm(ctx, id)
	if err != nil {
		return err
	}
	if subm.AttachmentRef != "" && s.files.Exists(subm.AttachmentRef) {
		if err := s.files.Delete(subm.AttachmentRef); err != nil {
			s.logger.Warn("failed to delete attachment",
				"subm_id", id, "path", subm.AttachmentRef, "error", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrSubmissionNotFound()
		}
		return ErrInternalSE().SetDebug(err)
	}
	s.logger.Info("submission deleted", "subm_id", id, "kind", subm.Kind)
	return nil
}

// Attachment resolves a submission's stored file for download: a friendly
// filename and the absolute path on disk.
func (s *SubmissionSrvc) Attachment(ctx context.Context, id uuid.UUID) (string, string, error) {
	subm, err := s.GetSubm(ctx, id)
	if err != nil {
		return "", "", err
	}
	if subm.AttachmentRef == "" || !s.files.Exists(subm.AttachmentRef) {
		return "", "", ErrNoAttachmentOnRecord()
	}
	spec, _ := Spec(subm.Kind)
	return spec.AttachmentName(subm.Payload), s.files.Abs(subm.AttachmentRef), nil
}
