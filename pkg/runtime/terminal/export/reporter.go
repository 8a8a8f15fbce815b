package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/vspc-reporter/pkg/models/domain"
)

// Reporter renders a creation run summary to the console.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(result domain.RunResult) error {
	tmpl := `
============================================================
{{if .DryRun}}DRY RUN {{end}}SUMMARY
============================================================
{{if .DryRun}}Would create{{else}}Successfully created{{end}}: {{len .Created}}
{{- range .Created}}
  + {{.Company.Name}}{{if .ReportName}}: {{.ReportName}}{{end}}
{{- end}}
{{- if .Failed}}
Failed: {{len .Failed}}
{{- range .Failed}}
  - {{.Company.Name}}: {{.Err}}
{{- end}}
{{- end}}
{{- if .DryRun}}

This was a dry run. Re-run without --dry-run to create the reports.
{{- end}}
`
	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, result)
}
