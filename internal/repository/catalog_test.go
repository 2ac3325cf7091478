package repository

import (
	"os"
	"path/filepath"
	"testing"

	"templatebot/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonCatalog = `{
  "Invoice": {
    "fields_order": ["Client Name", "Amount"],
    "template": "Invoice for {{.Client_Name}}: {{.Amount}}"
  },
  "Binance": {
    "label": "Binance ✨",
    "fields_order": ["Client Name", "Representative"],
    "auto_fields": {"Date": "DATE", "Branch": "HQ"},
    "template": "{{.Date}} {{.Client_Name}}"
  }
}`

const yamlCatalog = `
Invoice:
  fields_order:
    - Client Name
    - Amount
  template: "Invoice for {{.Client_Name}}: {{.Amount}}"
Binance:
  label: "Binance ✨"
  fields_order:
    - Client Name
    - Representative
  auto_fields:
    Date: DATE
    Branch: HQ
  template: "{{.Date}} {{.Client_Name}}"
`

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTemplateCatalogJSON(t *testing.T) {
	c, err := LoadTemplateCatalog(writeCatalog(t, "templates.json", jsonCatalog))
	require.NoError(t, err)
	assertCatalog(t, c)
}

func TestLoadTemplateCatalogYAML(t *testing.T) {
	c, err := LoadTemplateCatalog(writeCatalog(t, "templates.yaml", yamlCatalog))
	require.NoError(t, err)
	assertCatalog(t, c)
}

func assertCatalog(t *testing.T, c *TemplateCatalog) {
	t.Helper()
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"Binance", "Invoice"}, c.Names())

	inv, ok := c.Get("Invoice")
	require.True(t, ok)
	assert.Equal(t, []string{"Client Name", "Amount"}, inv.FieldsOrder)
	assert.Equal(t, "Invoice", inv.DisplayLabel())

	bin, ok := c.Get("Binance")
	require.True(t, ok)
	assert.Equal(t, "Binance ✨", bin.DisplayLabel())
	assert.Equal(t, entities.DateSentinel, bin.AutoFields["Date"])
	assert.Equal(t, "HQ", bin.AutoFields["Branch"])

	_, ok = c.Get("Missing")
	assert.False(t, ok)
}

func TestLoadTemplateCatalogBadFile(t *testing.T) {
	_, err := LoadTemplateCatalog(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	_, err = LoadTemplateCatalog(writeCatalog(t, "broken.json", "{not json"))
	assert.Error(t, err)
}
