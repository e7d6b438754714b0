package job

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shiplogix/backend/srvcerror"
)

type Service struct {
	logger *slog.Logger
	repo   Repo
}

func NewService(repo Repo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger: logger.With("module", "job"),
		repo:   repo,
	}
}

type CreateParams struct {
	Title              string
	Location           string
	JobType            string
	Company            string
	Profile            string
	ExperienceRequired string
	CTC                string
	Vacancies          int
	Qualification      string
	Description        string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Job, error) {
	if params.Title == "" {
		return nil, ErrMissingField("title")
	}
	if params.Location == "" {
		return nil, ErrMissingField("location")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	job := Job{
		ID:                 id,
		Title:              params.Title,
		Location:           params.Location,
		JobType:            params.JobType,
		Company:            params.Company,
		Profile:            params.Profile,
		ExperienceRequired: params.ExperienceRequired,
		CTC:                params.CTC,
		Vacancies:          params.Vacancies,
		Qualification:      params.Qualification,
		Description:        params.Description,
		IsActive:           true,
		CreatedAt:          time.Now(),
	}
	if err := s.repo.Store(ctx, job); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	s.logger.Info("job posted", "job_id", job.ID, "title", job.Title)
	return &job, nil
}

// ListActive returns open positions, newest first.
func (s *Service) ListActive(ctx context.Context) ([]Job, error) {
	jobs, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrJobNotFound()
		}
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return job, nil
}
