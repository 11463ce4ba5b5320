// Package bot принимает реплики пользователя из Telegram-чата: каждое
// сообщение — одна реплика для диалогового контроллера, ответы уходят в тот
// же чат.
package bot

import (
	"context"
	"math/rand"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"voice-reminder-bot/internal/usecase/dialog"
)

// Handler слушает апдейты и скармливает текст контроллеру.
type Handler struct {
	bot    *tgbotapi.BotAPI
	log    zerolog.Logger
	dialog *dialog.Controller
	ack    []string
	chatID int64
}

// NewHandler создаёт обработчик. chatID ограничивает ассистента одним чатом;
// ноль отключает проверку.
func NewHandler(api *tgbotapi.BotAPI, logger zerolog.Logger, controller *dialog.Controller, ackPhrases []string, chatID int64) *Handler {
	return &Handler{bot: api, log: logger, dialog: controller, ack: ackPhrases, chatID: chatID}
}

// Run крутит long polling до отмены контекста.
func (h *Handler) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := h.bot.GetUpdatesChan(cfg)
	h.log.Info().Str("bot", h.bot.Self.UserName).Msg("bot: слушаю апдейты")
	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, upd)
		}
	}
}

// HandleUpdate обрабатывает один апдейт.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil {
		return
	}
	if h.chatID != 0 && msg.Chat.ID != h.chatID {
		h.log.Debug().Int64("chat", msg.Chat.ID).Msg("bot: чужой чат, игнорирую")
		return
	}
	text := strings.TrimSpace(msg.Text)
	if strings.HasPrefix(text, "/start") {
		h.reply(msg.Chat.ID, h.ackPhrase()+" Скажи, например: «напомни позвонить маме завтра в 19:30».")
		return
	}
	if strings.HasPrefix(text, "/список") {
		h.dialog.HandleUtterance(ctx, "что у меня")
		return
	}
	if text == "" {
		h.reply(msg.Chat.ID, "Не расслышал.")
		return
	}
	h.dialog.HandleUtterance(ctx, text)
}

func (h *Handler) ackPhrase() string {
	if len(h.ack) == 0 {
		return "Слушаю."
	}
	return h.ack[rand.Intn(len(h.ack))]
}

func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.log.Error().Err(err).Msg("bot: не удалось отправить ответ")
	}
}
