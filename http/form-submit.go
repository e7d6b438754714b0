package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiplogix/backend/logger"
	"github.com/shiplogix/backend/subm"
	"github.com/wailsapp/mimetype"
)

const maxUploadBytes = 20 << 20

// createFormSubmission accepts a multipart form, stores the PDF attachment
// (when present) and persists the submission. It responds as soon as the
// record is stored; compression and email happen in the background.
func (httpserver *HttpServer) createFormSubmission(w http.ResponseWriter, r *http.Request) {
	kind := subm.Kind(chi.URLParam(r, "kind"))
	spec, ok := subm.Spec(kind)
	if !ok {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, subm.ErrUnknownKind(kind))
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJsonErrorResponse(w, "malformed multipart form",
			http.StatusBadRequest, "malformed_request")
		return
	}

	payload := make(subm.Payload, 0, len(spec.Fields))
	for _, field := range spec.Fields {
		if value := r.FormValue(field.Name); value != "" {
			payload = append(payload, subm.Field{Key: field.Name, Value: value})
		}
	}

	attachmentRef, err := httpserver.saveUpload(r, spec.UploadSubDir)
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	created, err := httpserver.submSrvc.Submit(r.Context(), subm.SubmitParams{
		Kind:          kind,
		Payload:       payload,
		AttachmentRef: attachmentRef,
	})
	if err != nil {
		if attachmentRef != "" {
			if rmErr := httpserver.files.Delete(attachmentRef); rmErr != nil {
				logger.FromContext(r.Context()).Warn("failed to remove rejected upload",
					"path", attachmentRef, "error", rmErr)
			}
		}
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	writeJsonCreatedResponse(w, mapSubm(*created))
}

// saveUpload stores the "file" part, if any, and sniffs it as a PDF. It
// returns the store-relative path, or "" when the form carried no file.
func (httpserver *HttpServer) saveUpload(r *http.Request, subDir string) (string, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", subm.ErrAttachmentNotStored().SetDebug(err)
	}
	defer file.Close()

	rel, err := httpserver.files.Save(subDir, header.Filename, file)
	if err != nil {
		return "", subm.ErrAttachmentNotStored().SetDebug(err)
	}

	mtype, err := mimetype.DetectFile(httpserver.files.Abs(rel))
	if err != nil || !mtype.Is("application/pdf") {
		if rmErr := httpserver.files.Delete(rel); rmErr != nil {
			logger.FromContext(r.Context()).Warn("failed to remove rejected upload",
				"path", rel, "error", rmErr)
		}
		return "", subm.ErrInvalidAttachmentType()
	}

	return rel, nil
}
