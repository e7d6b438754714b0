package subm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shiplogix/backend/notify"
)

type Kind string

const (
	KindRetailPartner Kind = "retail_partner"
	KindFranchise     Kind = "franchise"
	KindCareer        Kind = "career"
	KindInstitute     Kind = "institute"
	KindEnquiry       Kind = "enquiry"
)

// Status is the processing status of the background unit of work.
// A submission starts pending; completed and failed are terminal; stuck is a
// monitoring signal written by the stuck timer and may be overwritten by a
// late terminal write.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusStuck     Status = "stuck"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Field is one payload field in form order. Order matters: the notification
// body lists fields in the order the kind declares them.
type Field struct {
	Key   string
	Value string
}

type Payload []Field

func (p Payload) Get(key string) string {
	for _, f := range p {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

func (p Payload) notifyFields() notify.Payload {
	fields := make(notify.Payload, len(p))
	for i, f := range p {
		fields[i] = notify.Field{Key: f.Key, Value: f.Value}
	}
	return fields
}

// Submission is the unit of work tracked end to end: persisted synchronously
// at intake, then mutated by the background unit (terminal status) and
// possibly by the stuck timer.
type Submission struct {
	ID      uuid.UUID
	Kind    Kind
	Payload Payload

	// AttachmentRef is the store-relative path of the most recently known
	// good copy of the uploaded file: the original before compression, the
	// compressed artifact after. Empty for submissions without attachments.
	AttachmentRef string

	// ReviewStatus is the admin triage state (new, reviewed, ...), distinct
	// from the processing status of the background unit.
	ReviewStatus string

	ProcessingStatus Status
	ProcessingError  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
