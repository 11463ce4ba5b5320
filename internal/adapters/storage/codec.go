// Package storage содержит реализации хранилища списка напоминаний:
// JSON-файл, ключ в Redis и таблица в Postgres. Формат записи един, чтение
// терпимое: запись с нечитаемым сроком пропускается с записью в лог, а не
// превращается в ошибку пользователю.
package storage

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"voice-reminder-bot/internal/domain"
)

// timeLayout — наивное локальное время ISO-8601, без зоны.
const timeLayout = "2006-01-02T15:04:05"

var whenLayouts = []string{
	timeLayout,
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
}

type record struct {
	ID       string                 `json:"id,omitempty"`
	Text     string                 `json:"text"`
	When     string                 `json:"when"`
	Repeat   *domain.RecurrenceRule `json:"repeat"`
	Status   domain.Status          `json:"status"`
	Priority domain.Priority        `json:"priority"`
}

func toRecord(r *domain.Reminder) record {
	return record{
		ID:       r.ID,
		Text:     r.Text,
		When:     r.When.Format(timeLayout),
		Repeat:   r.Repeat,
		Status:   r.Status,
		Priority: r.Priority,
	}
}

// fromRecord восстанавливает напоминание. Записи без ID назначается
// суррогатный ключ, пустые статус и приоритет получают значения по умолчанию.
func fromRecord(rec record, logger zerolog.Logger) (*domain.Reminder, bool) {
	when, err := parseWhen(rec.When)
	if err != nil {
		logger.Warn().Str("when", rec.When).Str("text", rec.Text).Msg("storage: запись с нечитаемым сроком пропущена")
		return nil, false
	}
	r := &domain.Reminder{
		ID:       rec.ID,
		Text:     rec.Text,
		When:     when,
		Repeat:   rec.Repeat,
		Status:   rec.Status,
		Priority: rec.Priority,
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = domain.StatusActive
	}
	if r.Priority == "" {
		r.Priority = domain.PriorityLow
	}
	return r, true
}

func parseWhen(raw string) (time.Time, error) {
	var firstErr error
	for _, layout := range whenLayouts {
		when, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			return when, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func encode(reminders []*domain.Reminder) ([]byte, error) {
	records := make([]record, 0, len(reminders))
	for _, r := range reminders {
		records = append(records, toRecord(r))
	}
	return json.MarshalIndent(records, "", "  ")
}

func decode(data []byte, logger zerolog.Logger) ([]*domain.Reminder, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	reminders := make([]*domain.Reminder, 0, len(records))
	for _, rec := range records {
		if r, ok := fromRecord(rec, logger); ok {
			reminders = append(reminders, r)
		}
	}
	return reminders, nil
}
