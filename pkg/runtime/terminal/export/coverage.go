package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/vspc-reporter/pkg/services/reports"
)

// CoverageReporter renders report coverage per company.
type CoverageReporter struct {
	writer io.Writer
}

func NewCoverageReporter(writer io.Writer) *CoverageReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &CoverageReporter{writer: writer}
}

func (c *CoverageReporter) Handle(cov reports.Coverage) error {
	data := struct {
		Covered []coveredCompany
		Missing []string
	}{}

	for _, company := range cov.Covered() {
		data.Covered = append(data.Covered, coveredCompany{
			Name:    company.Name,
			Reports: cov.Reports[company.ID],
		})
	}
	for _, company := range cov.WithoutReports() {
		data.Missing = append(data.Missing, company.Name)
	}

	tmpl := `
Companies with reports: {{len .Covered}}
{{- range .Covered}}
  {{.Name}} ({{len .Reports}} report{{if ne (len .Reports) 1}}s{{end}})
{{- range .Reports}}
    - {{.}}
{{- end}}
{{- end}}

Companies without reports: {{len .Missing}}
{{- range .Missing}}
  {{.}}
{{- end}}
`
	t, err := template.New("coverage").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, data)
}

type coveredCompany struct {
	Name    string
	Reports []string
}
