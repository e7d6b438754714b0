package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shiplogix/backend/job"
	"github.com/shiplogix/backend/logger"
)

func (httpserver *HttpServer) createJob(w http.ResponseWriter, r *http.Request) {
	type createJobRequest struct {
		Title              string `json:"title"`
		Location           string `json:"location"`
		JobType            string `json:"jobType"`
		Company            string `json:"company"`
		Profile            string `json:"profile"`
		ExperienceRequired string `json:"experienceRequired"`
		CTC                string `json:"ctc"`
		Vacancies          int    `json:"vacancies"`
		Qualification      string `json:"qualification"`
		Description        string `json:"description"`
	}

	var request createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJsonErrorResponse(w, "malformed request body",
			http.StatusBadRequest, "malformed_request")
		return
	}

	created, err := httpserver.jobSrvc.Create(r.Context(), job.CreateParams{
		Title:              request.Title,
		Location:           request.Location,
		JobType:            request.JobType,
		Company:            request.Company,
		Profile:            request.Profile,
		ExperienceRequired: request.ExperienceRequired,
		CTC:                request.CTC,
		Vacancies:          request.Vacancies,
		Qualification:      request.Qualification,
		Description:        request.Description,
	})
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	writeJsonCreatedResponse(w, mapJob(*created))
}

func (httpserver *HttpServer) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := httpserver.jobSrvc.ListActive(r.Context())
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	resp := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		resp[i] = mapJob(j)
	}
	writeJsonSuccessResponse(w, resp)
}

func (httpserver *HttpServer) getJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "jobId"))
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, job.ErrJobNotFound())
		return
	}

	found, err := httpserver.jobSrvc.Get(r.Context(), id)
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	writeJsonSuccessResponse(w, mapJob(*found))
}
