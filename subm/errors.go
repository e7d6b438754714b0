package subm

import (
	"fmt"
	"net/http"

	"github.com/shiplogix/backend/srvcerror"
)

const ErrCodeUnknownKind = "unknown_submission_kind"

func ErrUnknownKind(kind Kind) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnknownKind,
		fmt.Sprintf("Unknown submission kind %q", kind),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeValidation = "validation_failed"

func ErrMissingField(name string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeValidation,
		fmt.Sprintf("Required field %q is missing", name),
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrAttachmentRequired() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeValidation,
		"A PDF attachment is required for this submission",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrAttachmentNotStored() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeValidation,
		"The referenced attachment was not found in the file store",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidAttachmentType = "invalid_attachment_type"

func ErrInvalidAttachmentType() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidAttachmentType,
		"Only PDF files are allowed for this submission",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeSubmissionNotFound = "submission_not_found"

func ErrSubmissionNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionNotFound,
		"The requested submission was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeInvalidReviewStatus = "invalid_review_status"

func ErrInvalidReviewStatus(status string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidReviewStatus,
		fmt.Sprintf("Invalid status value %q", status),
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeStoreUnavailable = "store_unavailable"

func ErrStoreUnavailable() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeStoreUnavailable,
		"The submission store is currently unavailable",
	).SetHttpStatusCode(http.StatusInternalServerError)
}

const ErrCodeAttachmentMissing = "attachment_missing"

func ErrNoAttachmentOnRecord() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAttachmentMissing,
		"This submission has no stored attachment",
	).SetHttpStatusCode(http.StatusNotFound)
}

func ErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
