package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/invtrack/invtrack"
)

const compositionMarkdownTemplate = `# Composition of {{ .Account }} on {{ .On }}

Total: **{{ .Total }}**

{{- if .Slices }}

| Position | Value | Weight |
|:---|---:|---:|
{{- range .Slices }}
| {{ .Label }} | {{ .Value }} | {{ printf "%.1f%%" (pct .Fraction) }} |
{{- end }}
{{- else }}

The account holds nothing of value on this date.
{{- end }}
`

// RenderComposition renders a composition breakdown to a markdown string.
func RenderComposition(c invtrack.Composition) string {
	tmpl := template.Must(template.New("composition").
		Funcs(template.FuncMap{"pct": func(f float64) float64 { return f * 100 }}).
		Parse(compositionMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, c); err != nil {
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}
