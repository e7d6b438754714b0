package http

import (
	"time"

	"github.com/shiplogix/backend/job"
	"github.com/shiplogix/backend/subm"
)

// mapSubm flattens the payload into the response object the admin frontend
// renders directly, alongside record metadata.
func mapSubm(s subm.Submission) map[string]any {
	resp := make(map[string]any, len(s.Payload)+8)
	for _, f := range s.Payload {
		resp[f.Key] = f.Value
	}
	resp["id"] = s.ID.String()
	resp["kind"] = string(s.Kind)
	resp["status"] = s.ReviewStatus
	resp["processingStatus"] = string(s.ProcessingStatus)
	if s.ProcessingError != "" {
		resp["processingError"] = s.ProcessingError
	}
	resp["hasAttachment"] = s.AttachmentRef != ""
	resp["createdAt"] = s.CreatedAt.UTC().Format(time.RFC3339)
	resp["updatedAt"] = s.UpdatedAt.UTC().Format(time.RFC3339)
	return resp
}

type submListResponse struct {
	Submissions    []map[string]any `json:"submissions"`
	Page           int              `json:"page"`
	Limit          int              `json:"limit"`
	Total          int              `json:"total"`
	TotalCompleted int              `json:"totalCompleted"`
	TotalFailed    int              `json:"totalFailed"`
}

type jobResponse struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Location           string `json:"location"`
	JobType            string `json:"jobType,omitempty"`
	Company            string `json:"company,omitempty"`
	Profile            string `json:"profile,omitempty"`
	ExperienceRequired string `json:"experienceRequired,omitempty"`
	CTC                string `json:"ctc,omitempty"`
	Vacancies          int    `json:"vacancies,omitempty"`
	Qualification      string `json:"qualification,omitempty"`
	Description        string `json:"description,omitempty"`
	IsActive           bool   `json:"isActive"`
	CreatedAt          string `json:"createdAt"`
}

func mapJob(j job.Job) jobResponse {
	return jobResponse{
		ID:                 j.ID.String(),
		Title:              j.Title,
		Location:           j.Location,
		JobType:            j.JobType,
		Company:            j.Company,
		Profile:            j.Profile,
		ExperienceRequired: j.ExperienceRequired,
		CTC:                j.CTC,
		Vacancies:          j.Vacancies,
		Qualification:      j.Qualification,
		Description:        j.Description,
		IsActive:           j.IsActive,
		CreatedAt:          j.CreatedAt.UTC().Format(time.RFC3339),
	}
}
