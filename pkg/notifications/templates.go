package notifications

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
)

const incidentOpenedText = `An incident was opened for {{ .PageName }}.

URL:              {{ .PageURL }}
Client:           {{ .Client | default "-" }}
Status:           {{ .FinalStatus }}
Error type:       {{ .Type | default "UNKNOWN" }}
Probable cause:   {{ .ProbableCause | default "unknown" }}
Failed checks:    {{ .ConsecutiveFailures }}
Detected at:      {{ .OccurredAt | date "2006-01-02 15:04:05 MST" }}

{{ .Message }}
`

const incidentOpenedHTML = `<html>
<body>
	<h2 style="color: #c0392b;">Incident opened: {{ .PageName }}</h2>
	<table cellpadding="4">
		<tr><td><b>URL</b></td><td><a href="{{ .PageURL }}">{{ .PageURL }}</a></td></tr>
		<tr><td><b>Client</b></td><td>{{ .Client | default "-" }}</td></tr>
		<tr><td><b>Status</b></td><td>{{ .FinalStatus }}</td></tr>
		<tr><td><b>Error type</b></td><td>{{ .Type | default "UNKNOWN" }}</td></tr>
		<tr><td><b>Probable cause</b></td><td>{{ .ProbableCause | default "unknown" }}</td></tr>
		<tr><td><b>Failed checks</b></td><td>{{ .ConsecutiveFailures }}</td></tr>
		<tr><td><b>Detected at</b></td><td>{{ .OccurredAt | date "2006-01-02 15:04:05 MST" }}</td></tr>
	</table>
	<p>{{ .Message }}</p>
	<hr>
	<small>Sent by MonitoraPrymo</small>
</body>
</html>`

const incidentResolvedText = `The incident for {{ .PageName }} was resolved.

URL:              {{ .PageURL }}
Client:           {{ .Client | default "-" }}
Current status:   {{ .FinalStatus }}
Resolved at:      {{ .OccurredAt | date "2006-01-02 15:04:05 MST" }}

{{ .Message }}
`

const incidentResolvedHTML = `<html>
<body>
	<h2 style="color: #27ae60;">Incident resolved: {{ .PageName }}</h2>
	<table cellpadding="4">
		<tr><td><b>URL</b></td><td><a href="{{ .PageURL }}">{{ .PageURL }}</a></td></tr>
		<tr><td><b>Client</b></td><td>{{ .Client | default "-" }}</td></tr>
		<tr><td><b>Current status</b></td><td>{{ .FinalStatus }}</td></tr>
		<tr><td><b>Resolved at</b></td><td>{{ .OccurredAt | date "2006-01-02 15:04:05 MST" }}</td></tr>
	</table>
	<p>{{ .Message }}</p>
	<hr>
	<small>Sent by MonitoraPrymo</small>
</body>
</html>`

var (
	openedText   = template.Must(template.New("opened").Funcs(sprig.TxtFuncMap()).Parse(incidentOpenedText))
	openedHTML   = htmltemplate.Must(htmltemplate.New("opened").Funcs(sprig.HtmlFuncMap()).Parse(incidentOpenedHTML))
	resolvedText = template.Must(template.New("resolved").Funcs(sprig.TxtFuncMap()).Parse(incidentResolvedText))
	resolvedHTML = htmltemplate.Must(htmltemplate.New("resolved").Funcs(sprig.HtmlFuncMap()).Parse(incidentResolvedHTML))
)

func incidentOpenedContent(data monitor.IncidentNotification) (EmailContent, error) {
	subject := fmt.Sprintf("[MonitoraPrymo] Incident: %s is %s", data.PageName, data.FinalStatus)
	return renderContent(subject, openedText, openedHTML, data)
}

func incidentResolvedContent(data monitor.IncidentNotification) (EmailContent, error) {
	subject := fmt.Sprintf("[MonitoraPrymo] Resolved: %s is back online", data.PageName)
	return renderContent(subject, resolvedText, resolvedHTML, data)
}

func renderContent(subject string, text *template.Template, html *htmltemplate.Template, data monitor.IncidentNotification) (EmailContent, error) {
	var plain bytes.Buffer
	if err := text.Execute(&plain, data); err != nil {
		return EmailContent{}, fmt.Errorf("failed to render plain body: %w", err)
	}
	var rich bytes.Buffer
	if err := html.Execute(&rich, data); err != nil {
		return EmailContent{}, fmt.Errorf("failed to render html body: %w", err)
	}
	return EmailContent{Subject: subject, PlainText: plain.String(), HTML: rich.String()}, nil
}

func testEmailContent() EmailContent {
	return EmailContent{
		Subject: "Test Email from MonitoraPrymo",
		PlainText: `This is a test email to verify your SMTP configuration is working correctly.

If you're seeing this, your email configuration is working!`,
		HTML: `<html>
<body>
	<h2>MonitoraPrymo Email Test</h2>
	<p>This is a test email to verify your SMTP configuration is working correctly.</p>
	<p style="color: green;">If you're seeing this, your email configuration is working!</p>
	<hr>
	<small>Sent by MonitoraPrymo</small>
</body>
</html>`,
	}
}
