package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"templatebot/internal/entities"

	"gopkg.in/yaml.v3"
)

// catalogEntry is the on-disk shape of one template.
type catalogEntry struct {
	Label       string            `json:"label" yaml:"label"`
	FieldsOrder []string          `json:"fields_order" yaml:"fields_order"`
	AutoFields  map[string]string `json:"auto_fields" yaml:"auto_fields"`
	Template    string            `json:"template" yaml:"template"`
}

// TemplateCatalog holds every template definition, loaded once at startup
// and never mutated afterwards.
type TemplateCatalog struct {
	templates map[string]*entities.TemplateDefinition
	names     []string
}

// NewTemplateCatalog builds a catalog from definitions directly.
func NewTemplateCatalog(defs ...*entities.TemplateDefinition) *TemplateCatalog {
	c := &TemplateCatalog{templates: make(map[string]*entities.TemplateDefinition, len(defs))}
	for _, d := range defs {
		c.templates[d.Name] = d
		c.names = append(c.names, d.Name)
	}
	sort.Strings(c.names)
	return c
}

// LoadTemplateCatalog reads a catalog file. The format is a mapping from
// template name to {fields_order, auto_fields, template, label}; JSON or
// YAML, chosen by file extension.
func LoadTemplateCatalog(path string) (*TemplateCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template catalog: %w", err)
	}

	entries := make(map[string]catalogEntry)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("parse template catalog %s: %w", path, err)
	}

	c := &TemplateCatalog{templates: make(map[string]*entities.TemplateDefinition, len(entries))}
	for name, e := range entries {
		c.templates[name] = &entities.TemplateDefinition{
			Name:        name,
			Label:       e.Label,
			FieldsOrder: e.FieldsOrder,
			AutoFields:  e.AutoFields,
			Body:        e.Template,
		}
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Get returns the definition for name, or false if absent.
func (c *TemplateCatalog) Get(name string) (*entities.TemplateDefinition, bool) {
	t, ok := c.templates[name]
	return t, ok
}

// Names lists all template names in a stable order.
func (c *TemplateCatalog) Names() []string {
	return c.names
}

// Len returns the number of templates in the catalog.
func (c *TemplateCatalog) Len() int {
	return len(c.templates)
}
