package http

import (
	"encoding/json"
	"net/http"

	"github.com/shiplogix/backend/logger"
)

func (httpserver *HttpServer) patchReviewStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := httpserver.lookupSubm(w, r)
	if !ok {
		return
	}

	type patchStatusRequest struct {
		Status string `json:"status"`
	}
	var request patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJsonErrorResponse(w, "malformed request body",
			http.StatusBadRequest, "malformed_request")
		return
	}

	updated, err := httpserver.submSrvc.SetReviewStatus(r.Context(), s.ID, request.Status)
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	writeJsonSuccessResponse(w, mapSubm(*updated))
}

func (httpserver *HttpServer) deleteFormSubmission(w http.ResponseWriter, r *http.Request) {
	s, ok := httpserver.lookupSubm(w, r)
	if !ok {
		return
	}

	if err := httpserver.submSrvc.DeleteSubm(r.Context(), s.ID); err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	writeJsonSuccessResponse(w, nil)
}
