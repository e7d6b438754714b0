package http

import (
	"fmt"
	"net/http"

	"github.com/shiplogix/backend/logger"
)

func (httpserver *HttpServer) downloadAttachment(w http.ResponseWriter, r *http.Request) {
	s, ok := httpserver.lookupSubm(w, r)
	if !ok {
		return
	}

	filename, absPath, err := httpserver.submSrvc.Attachment(r.Context(), s.ID)
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, absPath)
}
