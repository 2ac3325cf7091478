package usecases

import (
	"templatebot/internal/repository"
)

// GateEvaluator decides whether a user may proceed: the primary access
// password gates everything, and one catalog template requires an extra
// per-user unlock code. Passed gates are persisted and never cleared by
// normal flow.
type GateEvaluator struct {
	profiles        repository.ProfileStore
	password        string
	privateTemplate string
	privateCode     string
}

func NewGateEvaluator(profiles repository.ProfileStore, password, privateTemplate, privateCode string) *GateEvaluator {
	return &GateEvaluator{
		profiles:        profiles,
		password:        password,
		privateTemplate: privateTemplate,
		privateCode:     privateCode,
	}
}

// Authorized reports whether the user has passed the primary gate.
func (g *GateEvaluator) Authorized(userID int64) (bool, error) {
	p, err := g.profiles.Get(userID)
	if err != nil {
		return false, err
	}
	return p.Authorized, nil
}

// SubmitPassword checks a primary password attempt and persists the
// authorization on success. A wrong password is not an error; the caller
// re-prompts. There is no attempt counter or lockout.
func (g *GateEvaluator) SubmitPassword(userID int64, text string) (bool, error) {
	if text != g.password {
		return false, nil
	}
	if err := g.profiles.SetAuthorized(userID, true); err != nil {
		return false, err
	}
	return true, nil
}

// NeedsCode reports whether selecting the template requires a secondary
// unlock code the user has not entered yet.
func (g *GateEvaluator) NeedsCode(userID int64, template string) (bool, error) {
	if template != g.privateTemplate {
		return false, nil
	}
	p, err := g.profiles.Get(userID)
	if err != nil {
		return false, err
	}
	return !p.Unlocked(template), nil
}

// SubmitCode checks a secondary code attempt and persists the unlock for the
// template on success.
func (g *GateEvaluator) SubmitCode(userID int64, template, text string) (bool, error) {
	if text != g.privateCode {
		return false, nil
	}
	if err := g.profiles.SetUnlocked(userID, template); err != nil {
		return false, err
	}
	return true, nil
}
