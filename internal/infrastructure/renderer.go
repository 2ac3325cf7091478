package infrastructure

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateRenderer renders catalog bodies with text/template. Bodies are
// trusted (they ship with the deployment); user-entered values are plain
// substitutions. A missing substitution key fails the render rather than
// producing a partial document.
type TemplateRenderer struct{}

func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{}
}

func (r *TemplateRenderer) Render(body string, data map[string]string) ([]byte, error) {
	tpl, err := template.New("document").Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return buf.Bytes(), nil
}
