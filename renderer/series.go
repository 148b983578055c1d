package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/invtrack/invtrack"
)

// Series is the view model of a value or rebased series report.
type Series struct {
	Account string           `json:"account"`
	Mode    string           `json:"mode"` // "absolute" or "rebased"
	Points  []invtrack.Point `json:"points"`
}

const seriesMarkdownTemplate = `# {{ .Account }} value over time ({{ .Mode }})

| Date | Value |
|:---|---:|
{{- range .Points }}
| {{ .On }} | {{ .Value }} |
{{- end }}
`

// RenderSeries renders the Series view model to a markdown string.
func RenderSeries(s *Series) string {
	tmpl := template.Must(template.New("series").Parse(seriesMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, s); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}
