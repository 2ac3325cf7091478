package entities

import "strings"

// DateSentinel marks an auto-field whose value is the current date at render
// time. A sentinel date always overwrites; literal auto-fields only fill in
// missing keys.
const DateSentinel = "DATE"

// TemplateDefinition is one catalog entry. Immutable after load.
type TemplateDefinition struct {
	Name        string            // unique catalog key
	Label       string            // display label for buttons; Name if empty
	FieldsOrder []string          // prompts, in order
	AutoFields  map[string]string // field label -> literal value or DateSentinel
	Body        string            // render body
}

// DisplayLabel returns the button label for the template.
func (t *TemplateDefinition) DisplayLabel() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Name
}

// Filename derives the deterministic output filename for the template.
func (t *TemplateDefinition) Filename() string {
	return strings.ReplaceAll(t.Name, " ", "_") + ".html"
}

// IsRepField reports whether a field label triggers the saved-name picker.
// Matched case-insensitively; everything else compares case-sensitive.
func IsRepField(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "representative", "support specialist":
		return true
	}
	return false
}
