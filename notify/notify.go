// Package notify maps form submissions to notification emails: it resolves
// recipients per submission kind, renders the HTML body, and dispatches the
// message over SMTP.
package notify

import "context"

// Field is one business field of a submission payload, in form order.
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

type Attachment struct {
	Filename string
	Path     string
}

type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Notification is the resolved output for one submission: where the mail
// goes and what it says. Dispatch is left to a Notifier.
type Notification struct {
	Recipients []string
	Subject    string
	HTML       string
}

// Notifier dispatches a single message and returns an opaque message id.
// Implementations do not retry.
type Notifier interface {
	Send(ctx context.Context, msg Message) (string, error)
}
