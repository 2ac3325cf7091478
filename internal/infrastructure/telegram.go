package infrastructure

import (
	"context"
	"fmt"

	"templatebot/internal/interfaces"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// TelegramClient implements the outbound Sender boundary over the Bot API.
// Sends pass through a rate limiter sized to Telegram's global budget, and
// delivery failures are logged and swallowed — a dead chat or an edited
// message must never crash the event handler.
type TelegramClient struct {
	Bot     *tgbotapi.BotAPI
	limiter *rate.Limiter
}

func NewTelegramClient(token string) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	// Telegram allows ~30 messages per second bot-wide.
	return &TelegramClient{
		Bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(30), 5),
	}, nil
}

func (t *TelegramClient) send(c tgbotapi.Chattable) error {
	t.limiter.Wait(context.Background())
	if _, err := t.Bot.Send(c); err != nil {
		fmt.Printf("[TG] send failed: %v\n", err)
	}
	return nil
}

func (t *TelegramClient) SendText(chatID int64, text string, opts interfaces.SendOptions) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if opts.HTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	msg.DisableWebPagePreview = opts.NoLinkPreview
	return t.send(msg)
}

func (t *TelegramClient) SendChoice(chatID int64, text string, rows [][]interfaces.Choice) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = buildKeyboard(rows)
	return t.send(msg)
}

func (t *TelegramClient) SendDocument(chatID int64, data []byte, filename string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	return t.send(doc)
}

// AnswerCallback acknowledges a button press so the client stops its spinner.
func (t *TelegramClient) AnswerCallback(callbackID string) {
	if _, err := t.Bot.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		fmt.Printf("[TG] answer callback failed: %v\n", err)
	}
}

func buildKeyboard(rows [][]interfaces.Choice) tgbotapi.InlineKeyboardMarkup {
	var kbRows [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var kbRow []tgbotapi.InlineKeyboardButton
		for _, c := range row {
			kbRow = append(kbRow, tgbotapi.NewInlineKeyboardButtonData(c.Label, c.Token))
		}
		if len(kbRow) > 0 {
			kbRows = append(kbRows, kbRow)
		}
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}
