package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"voice-reminder-bot/internal/domain"
)

// Postgres хранит список напоминаний в таблице, сохраняя порядок создания
// через колонку pos. Save заменяет содержимое целиком: контракт хранилища —
// save(list), а не построчные апдейты.
type Postgres struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPostgres создаёт хранилище поверх пула подключений.
func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) *Postgres {
	return &Postgres{pool: pool, log: logger}
}

// EnsureSchema создаёт таблицу, если её ещё нет.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS reminders (
			pos      integer PRIMARY KEY,
			id       text NOT NULL,
			text     text NOT NULL,
			when_at  text NOT NULL,
			repeat   jsonb,
			status   text NOT NULL,
			priority text NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("создание таблицы reminders: %w", err)
	}
	return nil
}

// Load читает все записи в порядке создания.
func (p *Postgres) Load(ctx context.Context) ([]*domain.Reminder, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, text, when_at, repeat, status, priority FROM reminders ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("выборка напоминаний: %w", err)
	}
	defer rows.Close()

	var reminders []*domain.Reminder
	for rows.Next() {
		var rec record
		var repeatRaw []byte
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.When, &repeatRaw, &rec.Status, &rec.Priority); err != nil {
			return nil, fmt.Errorf("чтение строки: %w", err)
		}
		if len(repeatRaw) > 0 {
			var rule domain.RecurrenceRule
			if err := json.Unmarshal(repeatRaw, &rule); err != nil {
				p.log.Warn().Err(err).Str("id", rec.ID).Msg("storage: правило повторения не разобрано")
			} else {
				rec.Repeat = &rule
			}
		}
		if r, ok := fromRecord(rec, p.log); ok {
			reminders = append(reminders, r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("обход строк: %w", err)
	}
	return reminders, nil
}

// Save заменяет содержимое таблицы в одной транзакции.
func (p *Postgres) Save(ctx context.Context, reminders []*domain.Reminder) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("начало транзакции: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM reminders`); err != nil {
		return fmt.Errorf("очистка таблицы: %w", err)
	}
	for pos, r := range reminders {
		rec := toRecord(r)
		var repeatRaw []byte
		if rec.Repeat != nil {
			repeatRaw, err = json.Marshal(rec.Repeat)
			if err != nil {
				return fmt.Errorf("кодирование правила повторения: %w", err)
			}
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO reminders (pos, id, text, when_at, repeat, status, priority) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			pos, rec.ID, rec.Text, rec.When, repeatRaw, rec.Status, rec.Priority)
		if err != nil {
			return fmt.Errorf("вставка напоминания %s: %w", rec.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("фиксация транзакции: %w", err)
	}
	return nil
}
