package notify

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// KindRoute overrides the default recipient list when a payload field has
// one of the listed values, e.g. routing bike-logistics enquiries to a
// dedicated inbox.
type KindRoute struct {
	Field string              `toml:"field"`
	To    map[string][]string `toml:"to"`
}

type KindConfig struct {
	Title   string     `toml:"title"`
	To      []string   `toml:"to"`
	Subject string     `toml:"subject"`
	Route   *KindRoute `toml:"route,omitempty"`
}

type RecipientTable struct {
	Kinds map[string]KindConfig `toml:"kinds"`
}

// LoadRecipientTable reads the per-kind recipient configuration once at
// process start.
func LoadRecipientTable(path string) (*RecipientTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipient config: %w", err)
	}
	var table RecipientTable
	if err := toml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("failed to parse recipient config: %w", err)
	}
	for kind, cfg := range table.Kinds {
		if len(cfg.To) == 0 {
			return nil, fmt.Errorf("kind %q has no recipients", kind)
		}
	}
	return &table, nil
}

// Resolver deterministically maps (kind, payload) to recipients, subject and
// a rendered HTML body. It holds no mutable state.
type Resolver struct {
	table *RecipientTable
}

func NewResolver(table *RecipientTable) *Resolver {
	return &Resolver{table: table}
}

func (r *Resolver) Resolve(kind string, payload Payload) (*Notification, error) {
	cfg, ok := r.table.Kinds[kind]
	if !ok {
		return nil, fmt.Errorf("no notification config for kind %q", kind)
	}

	recipients := cfg.To
	if route := cfg.Route; route != nil {
		if override, ok := route.To[payload.Get(route.Field)]; ok {
			recipients = override
		}
	}

	html, err := Render(cfg.Title, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to render notification body: %w", err)
	}

	return &Notification{
		Recipients: recipients,
		Subject:    expandSubject(cfg.Subject, payload),
		HTML:       html,
	}, nil
}

// expandSubject substitutes {fieldName} references in the configured subject
// pattern with payload values.
func expandSubject(pattern string, payload Payload) string {
	subject := pattern
	for _, f := range payload {
		subject = strings.ReplaceAll(subject, "{"+f.Key+"}", f.Value)
	}
	return subject
}
