package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"voice-reminder-bot/internal/domain"
)

// File хранит список напоминаний в одном JSON-файле.
type File struct {
	path string
	log  zerolog.Logger
}

// NewFile создаёт файловое хранилище.
func NewFile(path string, logger zerolog.Logger) *File {
	return &File{path: path, log: logger}
}

// Load читает файл. Отсутствующий или повреждённый файл — пустой список.
func (f *File) Load(ctx context.Context) ([]*domain.Reminder, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("чтение %s: %w", f.path, err)
	}
	reminders, err := decode(data, f.log)
	if err != nil {
		f.log.Warn().Err(err).Str("path", f.path).Msg("storage: файл повреждён, начинаю с пустого списка")
		return nil, nil
	}
	return reminders, nil
}

// Save перезаписывает файл целиком.
func (f *File) Save(ctx context.Context, reminders []*domain.Reminder) error {
	data, err := encode(reminders)
	if err != nil {
		return fmt.Errorf("кодирование напоминаний: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("запись %s: %w", f.path, err)
	}
	return nil
}
