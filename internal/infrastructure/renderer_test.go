package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSubstitutesValues(t *testing.T) {
	r := NewTemplateRenderer()
	out, err := r.Render("Dear {{.Client_Name}}, amount due: {{.Amount}}.",
		map[string]string{"Client_Name": "Acme Co", "Amount": "500"})
	require.NoError(t, err)
	assert.Equal(t, "Dear Acme Co, amount due: 500.", string(out))
}

func TestRenderDeterministic(t *testing.T) {
	r := NewTemplateRenderer()
	data := map[string]string{"A": "1", "B": "2"}
	out1, err := r.Render("{{.A}}-{{.B}}", data)
	require.NoError(t, err)
	out2, err := r.Render("{{.A}}-{{.B}}", data)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestRenderMissingSubstitutionFails(t *testing.T) {
	r := NewTemplateRenderer()
	out, err := r.Render("Hello {{.Name}}", map[string]string{})
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestRenderMalformedTemplateFails(t *testing.T) {
	r := NewTemplateRenderer()
	_, err := r.Render("{{.Unclosed", map[string]string{"Unclosed": "x"})
	assert.Error(t, err)
}
