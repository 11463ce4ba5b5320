package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"voice-reminder-bot/internal/infra/metrics"
)

const messageLimit = 4096

// Announcer доставляет реплики ассистента в настроенный чат.
// Ошибки отправки логируются и не возвращаются вызывающему.
type Announcer struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    zerolog.Logger
}

// NewAnnouncer создаёт доставку в чат.
func NewAnnouncer(api *tgbotapi.BotAPI, chatID int64, logger zerolog.Logger) *Announcer {
	return &Announcer{bot: api, chatID: chatID, log: logger}
}

// Speak отправляет сообщение, при необходимости разрезая его под лимит
// Telegram.
func (a *Announcer) Speak(text string) {
	for _, part := range splitMessage(text) {
		if _, err := a.bot.Send(tgbotapi.NewMessage(a.chatID, part)); err != nil {
			metrics.AnnounceErrors.Inc()
			a.log.Error().Err(err).Msg("bot: не удалось отправить сообщение")
			return
		}
	}
}

// splitMessage режет текст на куски не длиннее лимита, предпочитая границы
// между перечисленными напоминаниями.
func splitMessage(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= messageLimit {
		return []string{text}
	}
	var parts []string
	for len(runes) > messageLimit {
		cut := messageLimit
		for i := messageLimit; i > 0; i-- {
			if runes[i-1] == ';' || runes[i-1] == ' ' {
				cut = i
				break
			}
		}
		part := strings.TrimSpace(string(runes[:cut]))
		if part != "" {
			parts = append(parts, part)
		}
		runes = runes[cut:]
	}
	if rest := strings.TrimSpace(string(runes)); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}
