package analysis

import (
	"embed"
	"encoding/json"
	"strings"
	"text/template"
)

//go:embed templates/analysis.tmpl
var promptFS embed.FS

// PromptWordLimit caps the length of the generated analysis.
const PromptWordLimit = 200

func parsePrompt() (*template.Template, error) {
	return template.New("analysis.tmpl").Funcs(template.FuncMap{
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
		"wordLimit": func() int { return PromptWordLimit },
	}).ParseFS(promptFS, "templates/analysis.tmpl")
}

func renderPrompt(tmpl *template.Template, summary Summary) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, summary); err != nil {
		return "", err
	}
	return sb.String(), nil
}
