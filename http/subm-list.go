package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiplogix/backend/logger"
	"github.com/shiplogix/backend/subm"
)

func (httpserver *HttpServer) listFormSubmissions(w http.ResponseWriter, r *http.Request) {
	kind := subm.Kind(chi.URLParam(r, "kind"))

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	result, err := httpserver.submSrvc.ListSubms(r.Context(), subm.ListFilter{
		Kind:         kind,
		ReviewStatus: r.URL.Query().Get("status"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	subms := make([]map[string]any, len(result.Subms))
	for i, s := range result.Subms {
		subms[i] = mapSubm(s)
	}

	writeJsonSuccessResponse(w, submListResponse{
		Submissions:    subms,
		Page:           page,
		Limit:          limit,
		Total:          result.Total,
		TotalCompleted: result.TotalCompleted,
		TotalFailed:    result.TotalFailed,
	})
}

func (httpserver *HttpServer) getFormSubmission(w http.ResponseWriter, r *http.Request) {
	s, ok := httpserver.lookupSubm(w, r)
	if !ok {
		return
	}
	writeJsonSuccessResponse(w, mapSubm(*s))
}
