package main

import (
	"fmt"
	"os"
	"strings"

	"templatebot/internal/infrastructure"
	httpapi "templatebot/internal/interfaces/http"
	"templatebot/internal/repository"
	"templatebot/internal/usecases"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newProfileStore picks a backend from the PROFILE_DSN shape: a Postgres
// DSN, a .db/.sqlite path, or (default) the JSON settings file.
func newProfileStore() (repository.ProfileStore, error) {
	dsn := os.Getenv("PROFILE_DSN")
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		pgClient, err := infrastructure.NewPostgresClient(dsn)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresProfileStore(pgClient.Pool), nil
	case strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"), strings.HasSuffix(dsn, ".sqlite3"):
		return repository.NewSQLiteProfileStore(dsn)
	default:
		return repository.NewFileProfileStore(getenv("USER_SETTINGS_FILE", "user_settings.json"))
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using process environment")
	}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		fmt.Println("ERROR: TELEGRAM_BOT_TOKEN environment variable not set")
		os.Exit(1)
	}

	catalog, err := repository.LoadTemplateCatalog(getenv("TEMPLATES_FILE", "templates_store.json"))
	if err != nil {
		panic("Failed to load template catalog: " + err.Error())
	}

	profiles, err := newProfileStore()
	if err != nil {
		panic("Failed to open profile store: " + err.Error())
	}

	telegramClient, err := infrastructure.NewTelegramClient(token)
	if err != nil {
		panic("Failed to connect to Telegram: " + err.Error())
	}

	sessions := infrastructure.NewSessionTable()
	gate := usecases.NewGateEvaluator(
		profiles,
		getenv("ACCESS_PASSWORD", "2468"),
		getenv("PRIVATE_TEMPLATE", "Ledger Live (Private)"),
		getenv("PRIVATE_CODE", "1083"),
	)
	engine := usecases.NewWizardEngine(
		telegramClient,
		infrastructure.NewTemplateRenderer(),
		profiles,
		catalog,
		sessions,
		gate,
	)

	// Admin API (health, login, stats) alongside the bot.
	if adminPassword := os.Getenv("ADMIN_PASSWORD"); adminPassword != "" {
		admin, err := usecases.NewAdminUsecase(profiles, sessions, catalog, adminPassword, os.Getenv("JWT_SECRET"))
		if err != nil {
			panic("Failed to set up admin API: " + err.Error())
		}
		middleware := httpapi.NewMiddleware(os.Getenv("JWT_SECRET"))
		r := gin.Default()
		httpapi.SetupRoutes(r, admin, middleware)
		go func() {
			if err := r.Run(getenv("HTTP_ADDR", "0.0.0.0:8080")); err != nil {
				fmt.Printf("FAILED to start HTTP Server: %v\n", err)
				os.Exit(1)
			}
		}()
	}

	fmt.Printf("Bot is running as @%s (%d templates loaded)\n", telegramClient.Bot.Self.UserName, catalog.Len())

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := telegramClient.Bot.GetUpdatesChan(u)

	// Updates are handled one at a time, so no two events for the same
	// conversation ever interleave.
	for update := range updates {
		if update.Message != nil {
			msg := update.Message
			chatID := msg.Chat.ID
			userID := msg.From.ID
			firstName := msg.From.FirstName

			var err error
			if msg.IsCommand() {
				switch msg.Command() {
				case "start":
					err = engine.HandleStart(chatID, userID, firstName)
				case "cancel":
					err = engine.HandleCancel(chatID, userID, firstName)
				}
			} else if msg.Text != "" {
				err = engine.HandleText(chatID, userID, firstName, msg.Text)
			}
			if err != nil {
				fmt.Printf("[BOT] handle message from %d: %v\n", userID, err)
			}
			continue
		}

		if update.CallbackQuery != nil {
			cb := update.CallbackQuery
			telegramClient.AnswerCallback(cb.ID)
			if cb.Message == nil {
				continue
			}
			err := engine.HandleCallback(cb.Message.Chat.ID, cb.From.ID, cb.From.FirstName, cb.Data)
			if err != nil {
				fmt.Printf("[BOT] handle callback from %d: %v\n", cb.From.ID, err)
			}
		}
	}
}
