package entities

import "strings"

// SessionState enumerates every per-conversation state. A conversation is in
// exactly one state at a time; wizard sub-state exists only for the wizard
// states, so illegal mode/stage combinations cannot be built.
type SessionState int

const (
	StateAwaitingPassword SessionState = iota
	StateAwaitingSecondaryCode
	StateAwaitingAddName
	StateCollecting
	StateAwaitingCustomValue
	StateEditSelect
	StateConfirm
)

func (s SessionState) String() string {
	switch s {
	case StateAwaitingPassword:
		return "awaiting_password"
	case StateAwaitingSecondaryCode:
		return "awaiting_secondary_code"
	case StateAwaitingAddName:
		return "awaiting_add_name"
	case StateCollecting:
		return "collecting"
	case StateAwaitingCustomValue:
		return "awaiting_custom_value"
	case StateEditSelect:
		return "edit_select"
	case StateConfirm:
		return "confirm"
	}
	return "unknown"
}

// Session is the volatile per-conversation state. At most one live instance
// per chat, owned exclusively by the SessionTable.
type Session struct {
	ChatID int64
	State  SessionState

	// PendingTemplate is set only while State is StateAwaitingSecondaryCode.
	PendingTemplate string

	// Wizard is set for the wizard states (Collecting, AwaitingCustomValue,
	// EditSelect, Confirm), nil for the gating states.
	Wizard *WizardState
}

// WizardState tracks progress through one template run.
// Cursor is always within [0, len(FieldsOrder)].
type WizardState struct {
	TemplateName string
	FieldsOrder  []string          // copy of the definition's order
	Values       map[string]string // keyed by NormalizeLabel(label)
	Cursor       int

	// AwaitingCustomFor holds the field label a free-text custom value is
	// expected for. Set only in StateAwaitingCustomValue and cleared
	// together with the value write.
	AwaitingCustomFor string
}

// InWizard reports whether the session carries wizard state.
func (s *Session) InWizard() bool {
	return s.Wizard != nil
}

// Value returns the stored value for a field label.
func (w *WizardState) Value(label string) (string, bool) {
	v, ok := w.Values[NormalizeLabel(label)]
	return v, ok
}

// SetValue stores a value under the normalized field label.
func (w *WizardState) SetValue(label, value string) {
	w.Values[NormalizeLabel(label)] = value
}

// NormalizeLabel produces the storage key for a field label: surrounding
// whitespace trimmed, internal spaces replaced by underscores. Display-label
// decorations therefore never desynchronize stored data.
func NormalizeLabel(label string) string {
	return strings.ReplaceAll(strings.TrimSpace(label), " ", "_")
}
