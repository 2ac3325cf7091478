package usecases

import (
	"fmt"
	"strings"
	"time"

	"templatebot/internal/entities"
	"templatebot/internal/infrastructure"
	"templatebot/internal/interfaces"
	"templatebot/internal/repository"
)

// dateFormat is the human-readable date written for DATE auto-fields.
const dateFormat = "02 January 2006"

// WizardEngine drives the per-conversation state machine: gating, ordered
// field collection, the review/confirm/edit loop, and document rendering on
// confirmation. Events for one conversation are handled one at a time; the
// engine itself keeps no state outside the SessionTable.
type WizardEngine struct {
	Sender   interfaces.Sender
	Renderer interfaces.Renderer
	Profiles repository.ProfileStore
	Catalog  *repository.TemplateCatalog
	Sessions *infrastructure.SessionTable
	Gate     *GateEvaluator

	// Now is the render-time clock for DATE auto-fields.
	Now func() time.Time
}

func NewWizardEngine(
	sender interfaces.Sender,
	renderer interfaces.Renderer,
	profiles repository.ProfileStore,
	catalog *repository.TemplateCatalog,
	sessions *infrastructure.SessionTable,
	gate *GateEvaluator,
) *WizardEngine {
	return &WizardEngine{
		Sender:   sender,
		Renderer: renderer,
		Profiles: profiles,
		Catalog:  catalog,
		Sessions: sessions,
		Gate:     gate,
		Now:      time.Now,
	}
}

var htmlOpts = interfaces.SendOptions{HTML: true, NoLinkPreview: true}

// HandleStart serves the /start command: gate prompt for unauthorized users,
// dashboard otherwise.
func (e *WizardEngine) HandleStart(chatID, userID int64, firstName string) error {
	ok, err := e.Gate.Authorized(userID)
	if err != nil {
		return err
	}
	if !ok {
		return e.promptGate(chatID)
	}
	return e.showDashboard(chatID, userID, firstName)
}

// HandleCancel serves the /cancel command: the session is discarded
// unconditionally and the conversation returns to the top level.
func (e *WizardEngine) HandleCancel(chatID, userID int64, firstName string) error {
	e.Sessions.Delete(chatID)
	ok, err := e.Gate.Authorized(userID)
	if err != nil {
		return err
	}
	if !ok {
		return e.promptGate(chatID)
	}
	return e.showDashboard(chatID, userID, firstName)
}

// HandleText consumes a free-text message against the conversation's session.
func (e *WizardEngine) HandleText(chatID, userID int64, firstName, text string) error {
	text = strings.TrimSpace(text)
	sess := e.Sessions.Get(chatID)

	// Primary gate first: it outranks any in-progress state.
	authorized, err := e.Gate.Authorized(userID)
	if err != nil {
		return err
	}
	if !authorized {
		if sess == nil || sess.State != entities.StateAwaitingPassword {
			return e.promptGate(chatID)
		}
		ok, err := e.Gate.SubmitPassword(userID, text)
		if err != nil {
			return err
		}
		if !ok {
			return e.Sender.SendText(chatID, "Incorrect password ❌. Try again:", interfaces.SendOptions{})
		}
		e.Sessions.Delete(chatID)
		return e.showDashboard(chatID, userID, firstName)
	}

	if sess != nil && sess.State == entities.StateAwaitingSecondaryCode {
		pending := sess.PendingTemplate
		if pending == "" {
			// A code prompt with nothing pending has no template to start.
			e.Sessions.Delete(chatID)
			return e.Sender.SendText(chatID, "Template not found.", interfaces.SendOptions{})
		}
		ok, err := e.Gate.SubmitCode(userID, pending, text)
		if err != nil {
			return err
		}
		if !ok {
			return e.Sender.SendText(chatID, "Incorrect code ❌. Try again:", interfaces.SendOptions{})
		}
		e.Sessions.Delete(chatID)
		if err := e.Sender.SendText(chatID, "Unlocked ✅", interfaces.SendOptions{}); err != nil {
			return err
		}
		return e.startTemplate(chatID, userID, pending)
	}

	if strings.EqualFold(text, "/cancel") {
		return e.HandleCancel(chatID, userID, firstName)
	}

	if sess != nil && sess.State == entities.StateAwaitingAddName {
		p, err := e.Profiles.Get(userID)
		if err != nil {
			return err
		}
		if text != "" && !p.HasRepName(text) {
			if err := e.Profiles.SetRepNames(userID, append(p.RepNames, text)); err != nil {
				return err
			}
		}
		e.Sessions.Delete(chatID)
		return e.showSettings(chatID, userID, "Saved ✅\n\n")
	}

	if sess != nil && sess.InWizard() {
		w := sess.Wizard
		switch sess.State {
		case entities.StateAwaitingCustomValue:
			w.SetValue(w.AwaitingCustomFor, text)
			w.AwaitingCustomFor = ""
			w.Cursor++
			sess.State = entities.StateCollecting
			return e.askNext(chatID, userID, sess)
		case entities.StateCollecting:
			if w.Cursor < len(w.FieldsOrder) {
				w.SetValue(w.FieldsOrder[w.Cursor], text)
				w.Cursor++
				return e.askNext(chatID, userID, sess)
			}
		}
		// Free text during review or edit selection falls through.
	}

	return e.showDashboard(chatID, userID, firstName)
}

// HandleCallback consumes a button press. Unrecognized or stale tokens are
// no-ops; wizard tokens without a matching session show the dashboard.
func (e *WizardEngine) HandleCallback(chatID, userID int64, firstName, data string) error {
	authorized, err := e.Gate.Authorized(userID)
	if err != nil {
		return err
	}
	if !authorized {
		return e.promptGate(chatID)
	}

	tok := entities.ParseToken(data)
	switch tok.Kind {
	case entities.TokenMenu:
		return e.handleMenu(chatID, userID, firstName, tok.Payload)

	case entities.TokenSettingsAdd:
		e.Sessions.Put(&entities.Session{ChatID: chatID, State: entities.StateAwaitingAddName})
		return e.Sender.SendText(chatID, "Type the representative name to add (or /cancel):", interfaces.SendOptions{})

	case entities.TokenSettingsDel:
		p, err := e.Profiles.Get(userID)
		if err != nil {
			return err
		}
		if tok.Index >= 0 && tok.Index < len(p.RepNames) {
			names := append(p.RepNames[:tok.Index], p.RepNames[tok.Index+1:]...)
			if err := e.Profiles.SetRepNames(userID, names); err != nil {
				return err
			}
		}
		return e.showSettings(chatID, userID, "Updated.\n\n")

	case entities.TokenTemplate:
		needs, err := e.Gate.NeedsCode(userID, tok.Payload)
		if err != nil {
			return err
		}
		if needs {
			e.Sessions.Put(&entities.Session{
				ChatID:          chatID,
				State:           entities.StateAwaitingSecondaryCode,
				PendingTemplate: tok.Payload,
			})
			return e.Sender.SendText(chatID, codeGateText(), htmlOpts)
		}
		return e.startTemplate(chatID, userID, tok.Payload)

	case entities.TokenRep:
		sess := e.Sessions.Get(chatID)
		if sess == nil || !sess.InWizard() || sess.State != entities.StateCollecting {
			return e.showDashboard(chatID, userID, firstName)
		}
		w := sess.Wizard
		if w.Cursor >= len(w.FieldsOrder) {
			return nil
		}
		label := w.FieldsOrder[w.Cursor]
		if tok.Payload == entities.RepCustom {
			sess.State = entities.StateAwaitingCustomValue
			w.AwaitingCustomFor = label
			return e.Sender.SendText(chatID, fmt.Sprintf("Type the %s name:", esc(label)), htmlOpts)
		}
		w.SetValue(label, tok.Payload)
		w.Cursor++
		return e.askNext(chatID, userID, sess)

	case entities.TokenConfirm:
		sess := e.Sessions.Get(chatID)
		if sess == nil || !sess.InWizard() || sess.State != entities.StateConfirm {
			return e.showDashboard(chatID, userID, firstName)
		}
		if tok.Yes {
			return e.renderAndSend(chatID, userID, sess)
		}
		sess.State = entities.StateEditSelect
		return e.Sender.SendChoice(chatID, "Select a field to edit:", editRows(sess.Wizard.FieldsOrder))

	case entities.TokenEdit:
		sess := e.Sessions.Get(chatID)
		if sess == nil || !sess.InWizard() || sess.State != entities.StateEditSelect {
			return e.showDashboard(chatID, userID, firstName)
		}
		if tok.Payload == entities.EditCancel {
			return e.showConfirmation(chatID, sess)
		}
		w := sess.Wizard
		idx := fieldIndex(w.FieldsOrder, tok.Payload)
		if idx < 0 {
			return nil
		}
		// Drop the old value so askNext re-prompts this field and only
		// this field; filled fields after it are skipped on the way back.
		delete(w.Values, entities.NormalizeLabel(tok.Payload))
		w.Cursor = idx
		sess.State = entities.StateCollecting
		return e.askNext(chatID, userID, sess)
	}

	// Unknown namespace: no-op.
	return nil
}

func (e *WizardEngine) handleMenu(chatID, userID int64, firstName, item string) error {
	switch item {
	case "home", "back":
		e.Sessions.Delete(chatID)
		return e.showDashboard(chatID, userID, firstName)
	case "create":
		return e.Sender.SendChoice(chatID, "Pick a template:", templateRows(e.Catalog))
	case "settings":
		return e.showSettings(chatID, userID, "")
	case "help":
		return e.Sender.SendChoice(chatID, howToText(), [][]interfaces.Choice{backRow()})
	}
	return nil
}

// startTemplate creates a fresh wizard session for the template and asks for
// the first field. No session is created when the template is unknown.
func (e *WizardEngine) startTemplate(chatID, userID int64, name string) error {
	tpl, ok := e.Catalog.Get(name)
	if !ok {
		return e.Sender.SendText(chatID, "Template not found.", interfaces.SendOptions{})
	}
	sess := &entities.Session{
		ChatID: chatID,
		State:  entities.StateCollecting,
		Wizard: &entities.WizardState{
			TemplateName: name,
			FieldsOrder:  append([]string(nil), tpl.FieldsOrder...),
			Values:       make(map[string]string),
		},
	}
	e.Sessions.Put(sess)
	return e.askNext(chatID, userID, sess)
}

// askNext prompts for the field under the cursor, advancing past fields that
// already hold a value (the way back from an edit), and moves to the review
// screen once the cursor passes the final field.
func (e *WizardEngine) askNext(chatID, userID int64, sess *entities.Session) error {
	w := sess.Wizard
	for w.Cursor < len(w.FieldsOrder) {
		label := w.FieldsOrder[w.Cursor]
		if _, ok := w.Value(label); ok {
			w.Cursor++
			continue
		}
		if entities.IsRepField(label) {
			p, err := e.Profiles.Get(userID)
			if err != nil {
				return err
			}
			return e.Sender.SendChoice(chatID, fmt.Sprintf("Choose %s:", esc(label)), repRows(p.RepNames))
		}
		return e.Sender.SendText(chatID, fmt.Sprintf("Enter value for '%s':", esc(label)), htmlOpts)
	}
	return e.showConfirmation(chatID, sess)
}

// showConfirmation lists every field with its stored value, one line per
// label in original order. A field without a value shows a marker, never an
// error.
func (e *WizardEngine) showConfirmation(chatID int64, sess *entities.Session) error {
	w := sess.Wizard
	sess.State = entities.StateConfirm
	w.Cursor = len(w.FieldsOrder)

	var b strings.Builder
	b.WriteString("Please confirm the details:\n\n")
	for _, label := range w.FieldsOrder {
		value, ok := w.Value(label)
		if !ok {
			value = "(missing)"
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", esc(label), esc(value)))
	}
	return e.Sender.SendChoice(chatID, strings.TrimRight(b.String(), "\n"), confirmRows())
}

// renderAndSend is the render dispatch: merge collected values with the
// template's auto-fields, render, transmit, bump the counter, clear the
// session. On a render failure the session is kept so the user can retry.
func (e *WizardEngine) renderAndSend(chatID, userID int64, sess *entities.Session) error {
	w := sess.Wizard
	tpl, ok := e.Catalog.Get(w.TemplateName)
	if !ok {
		e.Sessions.Delete(chatID)
		return e.Sender.SendText(chatID, "Template not found.", interfaces.SendOptions{})
	}

	data := make(map[string]string, len(w.Values)+len(tpl.AutoFields))
	for k, v := range w.Values {
		data[k] = v
	}
	for field, v := range tpl.AutoFields {
		key := entities.NormalizeLabel(field)
		if v == entities.DateSentinel {
			// The date sentinel always wins; literals only fill gaps.
			data[key] = e.Now().Format(dateFormat)
		} else if _, exists := data[key]; !exists {
			data[key] = v
		}
	}

	out, err := e.Renderer.Render(tpl.Body, data)
	if err != nil {
		fmt.Printf("[BOT] render %q failed: %v\n", w.TemplateName, err)
		return e.Sender.SendText(chatID, "Couldn't generate the document ❌. Tap ✅ Yes to try again.", interfaces.SendOptions{})
	}

	if err := e.Sender.SendDocument(chatID, out, tpl.Filename()); err != nil {
		return err
	}
	total, err := e.Profiles.IncrementGenerated(userID)
	if err != nil {
		return err
	}
	e.Sessions.Delete(chatID)
	return e.Sender.SendChoice(chatID,
		fmt.Sprintf("Done ✅\nTotal generated: %d", total), dashboardRow())
}

func (e *WizardEngine) promptGate(chatID int64) error {
	e.Sessions.Put(&entities.Session{ChatID: chatID, State: entities.StateAwaitingPassword})
	return e.Sender.SendText(chatID, gateText(), htmlOpts)
}

func (e *WizardEngine) showDashboard(chatID, userID int64, firstName string) error {
	if firstName == "" {
		firstName = "there"
	}
	p, err := e.Profiles.Get(userID)
	if err != nil {
		return err
	}
	return e.Sender.SendChoice(chatID, dashboardText(firstName, p.GeneratedCount), mainMenuRows())
}

func (e *WizardEngine) showSettings(chatID, userID int64, prefix string) error {
	p, err := e.Profiles.Get(userID)
	if err != nil {
		return err
	}
	text := prefix + "Settings • Manage your representative names.\nTap a row to remove, or add a new one."
	return e.Sender.SendChoice(chatID, text, settingsRows(p.RepNames))
}

func fieldIndex(fields []string, label string) int {
	for i, f := range fields {
		if f == label {
			return i
		}
	}
	return -1
}
