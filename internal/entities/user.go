package entities

// UserProfile is the durable per-user record. Created lazily on first
// reference. Authorized and entries in Unlocks are monotonic: once set they
// are never cleared by normal flow.
type UserProfile struct {
	Authorized     bool            `json:"authorized"`
	Unlocks        map[string]bool `json:"secondary_unlocks,omitempty"` // template name -> unlocked
	RepNames       []string        `json:"rep_names,omitempty"`         // ordered, unique
	GeneratedCount int             `json:"generated_count"`
}

// Unlocked reports whether the secondary gate for a template has been passed.
func (p *UserProfile) Unlocked(template string) bool {
	return p.Unlocks[template]
}

// HasRepName reports whether name is already in the saved list.
func (p *UserProfile) HasRepName(name string) bool {
	for _, n := range p.RepNames {
		if n == name {
			return true
		}
	}
	return false
}
