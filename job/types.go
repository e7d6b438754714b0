package job

import (
	"time"

	"github.com/google/uuid"
)

// Job is an open position shown on the careers page; career submissions may
// reference one by id.
type Job struct {
	ID                 uuid.UUID
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
	IsActive           bool
	CreatedAt          time.Time
}
