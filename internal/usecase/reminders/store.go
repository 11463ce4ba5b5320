// Package reminders хранит список напоминаний в памяти и синхронизирует его
// с коллаборатором-хранилищем. Все операции проходят под одним мьютексом:
// пользовательский диалог и фоновый планировщик работают с одной коллекцией.
package reminders

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"voice-reminder-bot/internal/domain"
	"voice-reminder-bot/internal/infra/metrics"
)

// Store — упорядоченная по времени создания коллекция напоминаний.
type Store struct {
	mu      sync.Mutex
	log     zerolog.Logger
	persist domain.Persistence
	items   []*domain.Reminder
	last    *domain.Reminder
}

// NewStore создаёт пустую коллекцию поверх хранилища.
func NewStore(persist domain.Persistence, logger zerolog.Logger) *Store {
	return &Store{persist: persist, log: logger}
}

// Load читает список из хранилища. Ошибка чтения даёт пустой список:
// ассистент продолжает работу с состоянием в памяти.
func (s *Store) Load(ctx context.Context) {
	items, err := s.persist.Load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("store: не удалось загрузить напоминания")
		items = nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	if n := len(items); n > 0 {
		s.last = items[n-1]
	}
}

// flushLocked сохраняет текущее состояние. Вызывается под мьютексом.
// Сбой сохранения не фатален: состояние в памяти остаётся источником истины.
func (s *Store) flushLocked(ctx context.Context) {
	if err := s.persist.Save(ctx, s.items); err != nil {
		metrics.PersistErrors.Inc()
		s.log.Error().Err(err).Msg("store: не удалось сохранить напоминания")
	}
}

// Add добавляет напоминание в конец коллекции и сохраняет список.
// Пустому ID назначается суррогатный ключ.
func (s *Store) Add(ctx context.Context, r *domain.Reminder) domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = domain.StatusActive
	}
	s.items = append(s.items, r)
	s.last = r
	s.flushLocked(ctx)
	return *r
}

// LastCreated возвращает копию последнего созданного напоминания.
func (s *Store) LastCreated() (domain.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return domain.Reminder{}, false
	}
	return *s.last, true
}

// SetClock выставляет часы и минуты напоминания, сохраняя дату.
func (s *Store) SetClock(ctx context.Context, id string, hour, minute int) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.ID == id {
			w := r.When
			r.When = time.Date(w.Year(), w.Month(), w.Day(), hour, minute, 0, 0, w.Location())
			s.flushLocked(ctx)
			return r.When, true
		}
	}
	return time.Time{}, false
}

// RescheduleLast переносит срок последнего созданного напоминания.
// Новый срок вычисляет переданная функция от текущего срока.
func (s *Store) RescheduleLast(ctx context.Context, shift func(when time.Time) time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return time.Time{}, false
	}
	s.last.When = shift(s.last.When)
	s.flushLocked(ctx)
	return s.last.When, true
}

// MarkLastDone помечает выполненным последнее активное напоминание
// в порядке создания.
func (s *Store) MarkLastDone(ctx context.Context) (domain.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.items) - 1; i >= 0; i-- {
		if !s.items[i].Done() {
			s.items[i].Status = domain.StatusDone
			s.flushLocked(ctx)
			return *s.items[i], true
		}
	}
	return domain.Reminder{}, false
}

// RemoveDone удаляет все завершённые напоминания и возвращает их число.
func (s *Store) RemoveDone(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	removed := 0
	for _, r := range s.items {
		if r.Done() {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.items = kept
	if removed > 0 {
		s.flushLocked(ctx)
	}
	return removed
}

// Match подбирает кандидатов на удаление по ключевому слову: «выполнен»/
// «заверш» — завершённые, «все» — всё подряд, иначе — вхождение подстроки
// в текст без учёта регистра. Возвращает ID в порядке создания.
func (s *Store) Match(key string) []string {
	key = strings.ToLower(strings.TrimSpace(key))
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	switch {
	case strings.Contains(key, "выполнен") || strings.Contains(key, "заверш"):
		for _, r := range s.items {
			if r.Done() {
				ids = append(ids, r.ID)
			}
		}
	case strings.Contains(key, "все"):
		for _, r := range s.items {
			ids = append(ids, r.ID)
		}
	default:
		for _, r := range s.items {
			if strings.Contains(strings.ToLower(r.Text), key) {
				ids = append(ids, r.ID)
			}
		}
	}
	return ids
}

// RemoveByID удаляет напоминания с перечисленными ID и возвращает их число.
func (s *Store) RemoveByID(ctx context.Context, ids []string) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	removed := 0
	for _, r := range s.items {
		if _, ok := drop[r.ID]; ok {
			removed++
			if s.last == r {
				s.last = nil
			}
			continue
		}
		kept = append(kept, r)
	}
	s.items = kept
	if removed > 0 {
		s.flushLocked(ctx)
	}
	return removed
}

// Upcoming возвращает ближайшие активные напоминания, срок которых ещё не
// прошёл, по возрастанию времени.
func (s *Store) Upcoming(now time.Time, limit int) []domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Reminder
	for _, r := range s.items {
		if r.Done() || r.When.Before(now) {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].When.Before(out[j].When) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FireDue находит активные напоминания с подошедшим сроком. Повторяющиеся
// сдвигаются по своему правилу и остаются активными, разовые помечаются
// выполненными. Возвращает копии сработавших напоминаний на момент
// срабатывания.
func (s *Store) FireDue(ctx context.Context, now time.Time) []domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var fired []domain.Reminder
	for _, r := range s.items {
		if r.Done() || r.When.After(now) {
			continue
		}
		fired = append(fired, *r)
		if r.Repeat != nil {
			r.When = r.Repeat.Next(r.When)
		} else {
			r.Status = domain.StatusDone
		}
	}
	if len(fired) > 0 {
		s.flushLocked(ctx)
	}
	return fired
}
