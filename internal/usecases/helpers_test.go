package usecases

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"templatebot/internal/entities"
	"templatebot/internal/infrastructure"
	"templatebot/internal/interfaces"
	"templatebot/internal/repository"

	"github.com/stretchr/testify/require"
)

const (
	testPassword        = "2468"
	testPrivateTemplate = "Ledger Live (Private)"
	testPrivateCode     = "1083"

	testChat int64 = 100
	testUser int64 = 7
)

type sentText struct {
	chatID int64
	text   string
	opts   interfaces.SendOptions
}

type sentChoice struct {
	chatID int64
	text   string
	rows   [][]interfaces.Choice
}

type sentDoc struct {
	chatID   int64
	data     []byte
	filename string
}

// fakeSender records every outbound call.
type fakeSender struct {
	texts   []sentText
	choices []sentChoice
	docs    []sentDoc
}

func (f *fakeSender) SendText(chatID int64, text string, opts interfaces.SendOptions) error {
	f.texts = append(f.texts, sentText{chatID, text, opts})
	return nil
}

func (f *fakeSender) SendChoice(chatID int64, text string, rows [][]interfaces.Choice) error {
	f.choices = append(f.choices, sentChoice{chatID, text, rows})
	return nil
}

func (f *fakeSender) SendDocument(chatID int64, data []byte, filename string) error {
	f.docs = append(f.docs, sentDoc{chatID, data, filename})
	return nil
}

func (f *fakeSender) lastText(t *testing.T) sentText {
	t.Helper()
	require.NotEmpty(t, f.texts)
	return f.texts[len(f.texts)-1]
}

func (f *fakeSender) lastChoice(t *testing.T) sentChoice {
	t.Helper()
	require.NotEmpty(t, f.choices)
	return f.choices[len(f.choices)-1]
}

func (f *fakeSender) sendCount() int {
	return len(f.texts) + len(f.choices) + len(f.docs)
}

// failRenderer always reports a render failure.
type failRenderer struct{}

func (failRenderer) Render(string, map[string]string) ([]byte, error) {
	return nil, errors.New("boom")
}

type testEnv struct {
	engine   *WizardEngine
	sender   *fakeSender
	profiles *repository.FileProfileStore
	sessions *infrastructure.SessionTable
	path     string
}

func testCatalog() *repository.TemplateCatalog {
	return repository.NewTemplateCatalog(
		&entities.TemplateDefinition{
			Name:        "Invoice",
			FieldsOrder: []string{"Client Name", "Amount"},
			Body:        "Invoice: {{.Client_Name}} owes {{.Amount}}",
		},
		&entities.TemplateDefinition{
			Name:        "Letter",
			FieldsOrder: []string{"Client Name", "Representative"},
			AutoFields:  map[string]string{"Date": entities.DateSentinel, "Branch": "HQ"},
			Body:        "{{.Date}} {{.Branch}}: {{.Client_Name}} / {{.Representative}}",
		},
		&entities.TemplateDefinition{
			Name:        "Dated",
			FieldsOrder: []string{"Date"},
			AutoFields:  map[string]string{"Date": entities.DateSentinel},
			Body:        "{{.Date}}",
		},
		&entities.TemplateDefinition{
			Name:        "Wide",
			FieldsOrder: []string{"B Field", "A Field", "C Field"},
			Body:        "{{.B_Field}}{{.A_Field}}{{.C_Field}}",
		},
		&entities.TemplateDefinition{
			Name:        testPrivateTemplate,
			FieldsOrder: []string{"Client Name"},
			Body:        "{{.Client_Name}}",
		},
	)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_settings.json")
	profiles, err := repository.NewFileProfileStore(path)
	require.NoError(t, err)

	sender := &fakeSender{}
	sessions := infrastructure.NewSessionTable()
	gate := NewGateEvaluator(profiles, testPassword, testPrivateTemplate, testPrivateCode)
	engine := NewWizardEngine(sender, infrastructure.NewTemplateRenderer(), profiles, testCatalog(), sessions, gate)
	engine.Now = func() time.Time {
		return time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	}

	return &testEnv{engine: engine, sender: sender, profiles: profiles, sessions: sessions, path: path}
}

func (env *testEnv) authorize(t *testing.T) {
	t.Helper()
	require.NoError(t, env.profiles.SetAuthorized(testUser, true))
}

func (env *testEnv) text(t *testing.T, s string) {
	t.Helper()
	require.NoError(t, env.engine.HandleText(testChat, testUser, "Jo", s))
}

func (env *testEnv) press(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, env.engine.HandleCallback(testChat, testUser, "Jo", token))
}

func (env *testEnv) session() *entities.Session {
	return env.sessions.Get(testChat)
}

// reviewLines splits a confirmation screen into its per-field lines.
func reviewLines(text string) []string {
	_, body, ok := strings.Cut(text, "\n\n")
	if !ok {
		return nil
	}
	return strings.Split(body, "\n")
}

// choiceTokens flattens a keyboard into its callback tokens.
func choiceTokens(rows [][]interfaces.Choice) []string {
	var out []string
	for _, row := range rows {
		for _, c := range row {
			out = append(out, c.Token)
		}
	}
	return out
}
