package usecases

import (
	"fmt"
	"html"

	"templatebot/internal/entities"
	"templatebot/internal/interfaces"
	"templatebot/internal/repository"
)

func esc(s string) string {
	return html.EscapeString(s)
}

func howToText() string {
	return "<b>How to use</b>\n" +
		"———————————————\n" +
		"1️⃣ Select a template from <b>🗂️ Choose Template</b>\n" +
		"2️⃣ Fill in the required fields\n" +
		"3️⃣ Pick the Representative / Support specialist from your saved names or choose <b>Custom…</b>\n" +
		"4️⃣ Review the summary and tap <b>Yes</b> to confirm (or <b>No</b> to edit)\n" +
		"5️⃣ You’ll receive the completed <b>.html</b> file\n" +
		"6️⃣ Use <b>⚙️ Settings</b> to add/remove your representative names anytime\n"
}

func dashboardText(firstName string, generated int) string {
	return fmt.Sprintf("<b>Welcome, %s!</b>\n\nTemplates generated: <b>%d</b>\n\n%s",
		esc(firstName), generated, howToText())
}

func gateText() string {
	return "<b>This bot is locked.</b>\n" +
		"Please enter the access password to continue.\n\n" +
		"Type the password:"
}

func codeGateText() string {
	return "<b>Locked template</b>\n" +
		"This template requires an extra access code.\n\n" +
		"Type the code:"
}

func mainMenuRows() [][]interfaces.Choice {
	return [][]interfaces.Choice{
		{{Label: "🗂️ Choose Template", Token: entities.MenuToken("create")}},
		{{Label: "⚙️ Settings", Token: entities.MenuToken("settings")}},
		{{Label: "📖 How to Use", Token: entities.MenuToken("help")}},
	}
}

func backRow() []interfaces.Choice {
	return []interfaces.Choice{{Label: "⬅️ Back", Token: entities.MenuToken("back")}}
}

func dashboardRow() [][]interfaces.Choice {
	return [][]interfaces.Choice{
		{{Label: "🏠 Return to Dashboard", Token: entities.MenuToken("home")}},
	}
}

// templateRows lays template buttons out two per row so the keyboard does
// not overflow, with a back row at the bottom.
func templateRows(catalog *repository.TemplateCatalog) [][]interfaces.Choice {
	var buttons []interfaces.Choice
	for _, name := range catalog.Names() {
		t, _ := catalog.Get(name)
		buttons = append(buttons, interfaces.Choice{Label: t.DisplayLabel(), Token: entities.TemplateToken(name)})
	}
	rows := pairRows(buttons)
	return append(rows, backRow())
}

// repRows lists saved names two per row plus the free-text option.
func repRows(names []string) [][]interfaces.Choice {
	var buttons []interfaces.Choice
	for _, n := range names {
		buttons = append(buttons, interfaces.Choice{Label: n, Token: entities.RepToken(n)})
	}
	rows := pairRows(buttons)
	return append(rows, []interfaces.Choice{{Label: "✍️ Custom…", Token: entities.RepToken(entities.RepCustom)}})
}

func settingsRows(names []string) [][]interfaces.Choice {
	var rows [][]interfaces.Choice
	for i, n := range names {
		rows = append(rows, []interfaces.Choice{{Label: "❌ Remove: " + n, Token: entities.SettingsDelToken(i)}})
	}
	rows = append(rows, []interfaces.Choice{{Label: "➕ Add name", Token: entities.SettingsAddToken()}})
	return append(rows, backRow())
}

func confirmRows() [][]interfaces.Choice {
	return [][]interfaces.Choice{
		{
			{Label: "✅ Yes", Token: entities.ConfirmToken(true)},
			{Label: "❌ No", Token: entities.ConfirmToken(false)},
		},
	}
}

func editRows(fieldsOrder []string) [][]interfaces.Choice {
	var rows [][]interfaces.Choice
	for _, label := range fieldsOrder {
		rows = append(rows, []interfaces.Choice{{Label: label, Token: entities.EditToken(label)}})
	}
	return append(rows, []interfaces.Choice{{Label: "⬅️ Cancel", Token: entities.EditToken(entities.EditCancel)}})
}

func pairRows(buttons []interfaces.Choice) [][]interfaces.Choice {
	var rows [][]interfaces.Choice
	for i := 0; i < len(buttons); i += 2 {
		end := i + 2
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}
	return rows
}
