package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"voice-reminder-bot/internal/domain"
)

// Redis хранит список напоминаний как JSON-значение одного ключа.
type Redis struct {
	client *redis.Client
	key    string
	log    zerolog.Logger
}

// NewRedis создаёт хранилище по указанному ключу.
func NewRedis(client *redis.Client, key string, logger zerolog.Logger) *Redis {
	return &Redis{client: client, key: key, log: logger}
}

// Load читает значение ключа. Отсутствующий ключ — пустой список.
func (r *Redis) Load(ctx context.Context) ([]*domain.Reminder, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("чтение ключа %s: %w", r.key, err)
	}
	reminders, err := decode(data, r.log)
	if err != nil {
		r.log.Warn().Err(err).Str("key", r.key).Msg("storage: значение повреждено, начинаю с пустого списка")
		return nil, nil
	}
	return reminders, nil
}

// Save перезаписывает значение ключа целиком.
func (r *Redis) Save(ctx context.Context, reminders []*domain.Reminder) error {
	data, err := encode(reminders)
	if err != nil {
		return fmt.Errorf("кодирование напоминаний: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("запись ключа %s: %w", r.key, err)
	}
	return nil
}
