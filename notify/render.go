package notify

import (
	"html/template"
	"strings"
	"time"
	"unicode"
)

// internalFields must never show up in an outbound email.
var internalFields = map[string]bool{
	"id":               true,
	"kind":             true,
	"status":           true,
	"processingStatus": true,
	"processingError":  true,
	"createdAt":        true,
	"updatedAt":        true,
	"attachmentRef":    true,
	"resumeUrl":        true,
	"marksheetUrl":     true,
	"applicationFileUrl": true,
}

type bodyRow struct {
	Label string
	Value string
}

type bodyData struct {
	Title string
	Date  string
	Rows  []bodyRow
}

var bodyTmpl = template.Must(template.New("notification").Parse(`
<div style="font-family: 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f4f6f8; padding: 24px;">
  <div style="max-width: 650px; margin: 0 auto; background: #ffffff; border-radius: 14px; overflow: hidden; box-shadow: 0 10px 30px rgba(0,0,0,0.08);">
    <div style="background: linear-gradient(135deg, #001F39, #084C83); padding: 30px; text-align: center; color: #ffffff;">
      <h2 style="margin: 0; font-size: 22px; font-weight: 700; letter-spacing: 0.5px; text-transform: uppercase;">Admin Panel</h2>
      <p style="margin-top: 6px; font-size: 14px; opacity: 0.9; font-weight: 600;">{{.Title}}</p>
      <p style="margin-top: 4px; font-size: 12px; opacity: 0.7; letter-spacing: 1px;">DATE: {{.Date}}</p>
    </div>
    <div style="padding: 28px;">
      <p style="font-size: 14px; color: #475569; margin-bottom: 20px;">A new submission has been recorded with the following details:</p>
      <div style="border: 1px solid #f1f5f9; border-radius: 8px; padding: 0 16px;">
{{- range .Rows}}
        <div style="display: flex; justify-content: space-between; align-items: flex-start; padding: 12px 0; border-bottom: 1px solid #e5e7eb; gap: 12px; font-size: 14px;">
          <span style="color: #64748b; font-weight: 600; min-width: 140px;">{{.Label}}</span>
          <span style="color: #0f172a; font-weight: 600; text-align: right; word-break: break-word;">{{.Value}}</span>
        </div>
{{- end}}
      </div>
    </div>
    <div style="background: #f8fafc; padding: 20px; text-align: center; font-size: 12px; color: #64748b; border-top: 1px solid #edf2f7;">
      This is an automated email. Please do not reply to this address.
    </div>
  </div>
</div>
`))

// Render produces the HTML notification body for a submission. Only
// caller-supplied business fields appear: internal fields are redacted and
// fields that are empty or carry the literal text "undefined" are omitted.
func Render(title string, payload Payload) (string, error) {
	rows := make([]bodyRow, 0, len(payload))
	for _, f := range payload {
		if internalFields[f.Key] {
			continue
		}
		value := strings.TrimSpace(f.Value)
		if value == "" || strings.EqualFold(value, "undefined") || strings.EqualFold(value, "null") {
			continue
		}
		rows = append(rows, bodyRow{
			Label: formatLabel(f.Key),
			Value: displayValue(value),
		})
	}

	data := bodyData{
		Title: title,
		Date:  time.Now().Format("02-01-2006"),
		Rows:  rows,
	}

	var sb strings.Builder
	if err := bodyTmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// formatLabel turns a camelCase field key into a spaced, capitalized label,
// e.g. "desiredLocation" -> "Desired Location".
func formatLabel(key string) string {
	var sb strings.Builder
	for i, r := range key {
		if i == 0 {
			sb.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func displayValue(value string) string {
	switch value {
	case "true":
		return "Yes"
	case "false":
		return "No"
	}
	return value
}
