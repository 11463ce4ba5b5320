package dialog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voice-reminder-bot/internal/domain"
	"voice-reminder-bot/internal/infra/metrics"
	"voice-reminder-bot/internal/usecase/nlp"
)

// route классифицирует свежую реплику. Проверки идут от более специфичных
// к менее: «очисти выполненные» раньше, чем просто «выполнено».
func (c *Controller) route(ctx context.Context, t string) {
	switch {
	case strings.Contains(t, "очист") && (strings.Contains(t, "выполн") || strings.Contains(t, "заверш")):
		metrics.IncCommand("cleanup")
		c.cleanup(ctx)
	case strings.Contains(t, "выполн") || strings.Contains(t, "готово") || strings.Contains(t, "сделано"):
		metrics.IncCommand("done")
		c.markLastDone(ctx)
	case strings.HasPrefix(t, "удали") || strings.Contains(t, "удалить"):
		metrics.IncCommand("delete")
		c.deleteByKeyword(t)
	case strings.Contains(t, "отлож") || strings.Contains(t, "перенес") || strings.Contains(t, "попозже"):
		metrics.IncCommand("postpone")
		c.postponeLast(ctx, t)
	case strings.HasPrefix(t, "что у меня") || strings.HasPrefix(t, "какие напоминания"):
		metrics.IncCommand("query")
		c.readUpcoming()
	default:
		metrics.IncCommand("create")
		c.createReminder(ctx, t)
	}
}

func (c *Controller) cleanup(ctx context.Context) {
	removed := c.store.RemoveDone(ctx)
	if removed > 0 {
		metrics.CleanupRemovedTotal.Add(float64(removed))
		c.announcer.Speak(fmt.Sprintf("Очистил %d завершённых.", removed))
		return
	}
	c.announcer.Speak("Нет завершённых.")
}

func (c *Controller) markLastDone(ctx context.Context) {
	r, ok := c.store.MarkLastDone(ctx)
	if !ok {
		c.announcer.Speak("Нет активных задач.")
		return
	}
	c.announcer.Speak(fmt.Sprintf("Пометил как выполненное: %s.", r.Title()))
}

func (c *Controller) deleteByKeyword(t string) {
	key := extractDeleteKey(t)
	if key == "" {
		c.announcer.Speak("Ключевое слово не понял.")
		return
	}
	// пустой набор кандидатов тоже уходит в подтверждение: про «ничего не
	// нашёл» сообщит контроллер при ответе «да»
	c.confirmDelete(c.store.Match(key))
}

func (c *Controller) postponeLast(ctx context.Context, t string) {
	now := c.now()
	when, ok := c.store.RescheduleLast(ctx, func(when time.Time) time.Time {
		switch {
		case strings.Contains(t, "мин"):
			return when.Add(10 * time.Minute)
		case strings.Contains(t, "час"):
			return when.Add(time.Hour)
		case strings.Contains(t, "завтра"):
			d := now.AddDate(0, 0, 1)
			return time.Date(d.Year(), d.Month(), d.Day(), when.Hour(), when.Minute(), 0, 0, d.Location())
		}
		for _, name := range nlp.Weekdays {
			if strings.Contains(t, name) {
				d := nlp.NextWeekday(name, now)
				return time.Date(d.Year(), d.Month(), d.Day(), when.Hour(), when.Minute(), 0, 0, d.Location())
			}
		}
		return when.Add(15 * time.Minute)
	})
	if !ok {
		c.announcer.Speak("Нет последнего напоминания.")
		return
	}
	c.log.Debug().Time("when", when).Msg("dialog: напоминание перенесено")
	c.announcer.Speak("Перенёс.")
}

func (c *Controller) readUpcoming() {
	upcoming := c.store.Upcoming(c.now(), 5)
	if len(upcoming) == 0 {
		c.announcer.Speak("Ближайших нет.")
		return
	}
	parts := make([]string, 0, len(upcoming))
	for _, r := range upcoming {
		parts = append(parts, fmt.Sprintf("%s — %s (%s)", r.Title(), r.When.Format("02.01 15:04"), r.Priority))
	}
	c.announcer.Speak(strings.Join(parts, "; "))
}

func (c *Controller) createReminder(ctx context.Context, t string) {
	content := extractContent(t)
	if content == "" {
		content = "без названия"
	}
	level := nlp.AnalyzePriority(t)
	sched := nlp.ParseSchedule(t, c.now())

	item := c.store.Add(ctx, &domain.Reminder{
		Text:     content,
		When:     sched.When,
		Repeat:   sched.Repeat,
		Status:   domain.StatusActive,
		Priority: level,
	})
	c.announcer.Speak(fmt.Sprintf("%s Напомню: %s — %s.", priorityResponse(level), item.Title(), item.When.Format("02.01 15:04")))

	switch {
	case sched.NeedsClarification:
		c.askTime(item)
	case level.Urgent():
		c.offerPrealert(item)
	}
}

// contentCutKeywords — временные и повторительные маркеры, на которых
// обрезается текст напоминания.
var contentCutKeywords = buildContentCutKeywords()

func buildContentCutKeywords() []string {
	kws := []string{" в ", "через ", "завтра", "послезавтра", "сегодня"}
	kws = append(kws, nlp.Weekdays...)
	return append(kws, "каждый", "по ")
}

// extractContent обрезает реплику на самом раннем вхождении любого
// временного маркера и убирает глаголы-команды.
func extractContent(t string) string {
	content := t
	cut := -1
	for _, kw := range contentCutKeywords {
		if i := strings.Index(t, kw); i >= 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	if cut >= 0 {
		content = t[:cut]
	}
	content = strings.ReplaceAll(content, "напомни", "")
	content = strings.ReplaceAll(content, "запомни", "")
	return strings.TrimSpace(content)
}

// extractDeleteKey убирает из реплики глагол удаления и слово «напоминание».
func extractDeleteKey(t string) string {
	key := strings.ReplaceAll(t, "удалить", "")
	key = strings.ReplaceAll(key, "удали", "")
	key = strings.ReplaceAll(key, "напоминания", "")
	key = strings.ReplaceAll(key, "напоминание", "")
	return strings.TrimSpace(key)
}
