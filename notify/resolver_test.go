package notify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shiplogix/backend/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRecipientConfig = `
[kinds.career]
title = "Career"
to = ["hr@example.com", "recruitment@example.com"]
subject = "New Career Application - {firstName} {lastName}"

[kinds.enquiry]
title = "Enquiry Forms"
to = ["sales@example.com"]
subject = "[New Enquiry] - {serviceName}"

[kinds.enquiry.route]
field = "serviceName"

[kinds.enquiry.route.to]
bike-logistics = ["bike@example.com"]
`

func loadTestTable(t *testing.T) *notify.RecipientTable {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipients.toml")
	require.NoError(t, os.WriteFile(path, []byte(testRecipientConfig), 0o644))
	table, err := notify.LoadRecipientTable(path)
	require.NoError(t, err)
	return table
}

func TestResolveDefaultRecipients(t *testing.T) {
	resolver := notify.NewResolver(loadTestTable(t))

	n, err := resolver.Resolve("career", notify.Payload{
		{Key: "firstName", Value: "Jane"},
		{Key: "lastName", Value: "Doe"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"hr@example.com", "recruitment@example.com"}, n.Recipients)
	assert.Equal(t, "New Career Application - Jane Doe", n.Subject)
	assert.Contains(t, n.HTML, "Jane")
}

func TestResolveRouteOverride(t *testing.T) {
	resolver := notify.NewResolver(loadTestTable(t))

	n, err := resolver.Resolve("enquiry", notify.Payload{
		{Key: "fullName", Value: "Sam"},
		{Key: "serviceName", Value: "bike-logistics"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bike@example.com"}, n.Recipients)
	assert.Equal(t, "[New Enquiry] - bike-logistics", n.Subject)

	n, err = resolver.Resolve("enquiry", notify.Payload{
		{Key: "fullName", Value: "Sam"},
		{Key: "serviceName", Value: "warehousing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sales@example.com"}, n.Recipients)
}

func TestResolveUnknownKind(t *testing.T) {
	resolver := notify.NewResolver(loadTestTable(t))
	_, err := resolver.Resolve("blog", nil)
	assert.Error(t, err)
}

func TestLoadRecipientTableRejectsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipients.toml")
	require.NoError(t, os.WriteFile(path, []byte("[kinds.career]\nto = []\nsubject = \"x\"\n"), 0o644))
	_, err := notify.LoadRecipientTable(path)
	assert.Error(t, err)
}
