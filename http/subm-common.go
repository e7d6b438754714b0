package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shiplogix/backend/logger"
	"github.com/shiplogix/backend/subm"
)

// lookupSubm resolves the {kind}/{submId} route pair to a submission. A
// record reached through the wrong kind prefix is reported as not found.
func (httpserver *HttpServer) lookupSubm(w http.ResponseWriter, r *http.Request) (*subm.Submission, bool) {
	kind := subm.Kind(chi.URLParam(r, "kind"))
	if _, ok := subm.Spec(kind); !ok {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, subm.ErrUnknownKind(kind))
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "submId"))
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, subm.ErrSubmissionNotFound())
		return nil, false
	}

	s, err := httpserver.submSrvc.GetSubm(r.Context(), id)
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return nil, false
	}
	if s.Kind != kind {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, subm.ErrSubmissionNotFound())
		return nil, false
	}

	return s, true
}
