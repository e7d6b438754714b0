package subm

import (
	"context"
	"fmt"
	"time"

	"github.com/shiplogix/backend/metrics"
	"github.com/shiplogix/backend/notify"
)

const stuckErrMsg = "Processing exceeded time limit"

// process is the background unit of work for one submission: compress the
// attachment, send the notification, record the outcome. It owns the
// submission exclusively, so no cross-unit locking is needed.
//
// The stuck timer is a monitoring signal, not a cancellation mechanism: if
// it fires the record is flagged stuck (only while still pending) and the
// unit keeps running; an eventual terminal write overwrites the flag.
func (s *SubmissionSrvc) process(subm Submission) {
	start := time.Now()
	ctx := context.Background()
	logger := s.logger.With("subm_id", subm.ID, "kind", subm.Kind)

	// failures must never escape the unit: the caller already got a 201
	// and the status write is the only way to learn the outcome
	defer func() {
		if r := recover(); r != nil {
			logger.Error("background unit panicked", "panic", r)
			s.writeOutcome(ctx, subm, StatusFailed, fmt.Sprintf("internal fault: %v", r), "")
		}
	}()

	timer := time.AfterFunc(s.stuckAfter, func() {
		flagged, err := s.repo.MarkStuckIfPending(context.Background(), subm.ID, stuckErrMsg)
		if err != nil {
			logger.Error("failed to mark submission stuck", "error", err)
			return
		}
		if flagged {
			logger.Error("submission is likely stuck", "after", s.stuckAfter)
			metrics.SubmissionsProcessed.WithLabelValues(string(subm.Kind), string(StatusStuck)).Inc()
		}
	})
	defer timer.Stop()

	// compression failure is non-fatal: keep the original attachment live
	attachmentRef := subm.AttachmentRef
	compressedRef := ""
	if attachmentRef != "" {
		newPath, err := s.compressor.Compress(ctx, s.files.Abs(attachmentRef))
		if err != nil {
			logger.Warn("pdf compression failed, keeping original", "error", err)
		} else if rel, relErr := s.files.Rel(newPath); relErr != nil {
			logger.Warn("compressed file is outside the store, keeping original", "error", relErr)
		} else {
			compressedRef = rel
			attachmentRef = rel
		}
	}

	spec, _ := Spec(subm.Kind)
	notification, err := s.resolver.Resolve(string(subm.Kind), subm.Payload.notifyFields())
	if err != nil {
		timer.Stop()
		logger.Error("failed to resolve notification", "error", err)
		s.writeOutcome(ctx, subm, StatusFailed, err.Error(), "")
		return
	}

	var attachments []notify.Attachment
	if attachmentRef != "" {
		attachments = append(attachments, notify.Attachment{
			Filename: spec.AttachmentName(subm.Payload),
			Path:     s.files.Abs(attachmentRef),
		})
	}

	messageID, err := s.notifier.Send(ctx, notify.Message{
		To:          notification.Recipients,
		Subject:     notification.Subject,
		HTML:        notification.HTML,
		Attachments: attachments,
	})
	if err != nil {
		timer.Stop()
		logger.Error("notification dispatch failed", "error", err)
		s.writeOutcome(ctx, subm, StatusFailed, err.Error(), "")
		return
	}

	timer.Stop()
	s.writeOutcome(ctx, subm, StatusCompleted, "", compressedRef)
	metrics.ProcessingDuration.WithLabelValues(string(subm.Kind)).Observe(time.Since(start).Seconds())
	logger.Info("background processing finished",
		"message_id", messageID,
		"recipients", len(notification.Recipients),
		"duration", time.Since(start))
}

// writeOutcome records the terminal status of a background unit. The write
// is unconditional: a terminal status overwrites an earlier stuck flag
// (last write wins, same as two independent writers on one record).
func (s *SubmissionSrvc) writeOutcome(ctx context.Context, subm Submission,
	status Status, procErr string, compressedRef string) {
	patch := Patch{ProcessingStatus: &status}
	if procErr != "" {
		patch.ProcessingError = &procErr
	}
	if compressedRef != "" {
		patch.AttachmentRef = &compressedRef
	}
	if err := s.repo.Patch(ctx, subm.ID, patch); err != nil {
		s.logger.Error("failed to record processing outcome",
			"subm_id", subm.ID, "status", status, "error", err)
		return
	}
	metrics.SubmissionsProcessed.WithLabelValues(string(subm.Kind), string(status)).Inc()
}
