// Package schedule отвечает за фоновое срабатывание напоминаний: периодный
// опрос коллекции, доставку и еженедельную очистку завершённых.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"voice-reminder-bot/internal/domain"
	"voice-reminder-bot/internal/infra/metrics"
	"voice-reminder-bot/internal/usecase/reminders"
)

// Scheduler опрашивает коллекцию с фиксированным периодом.
type Scheduler struct {
	store         *reminders.Store
	announcer     domain.Announcer
	log           zerolog.Logger
	interval      time.Duration
	cleanupWindow time.Duration
	nextCleanup   time.Time
}

// NewScheduler создаёт планировщик. Период — настройка, не свойство
// корректности: Tick можно вызывать с любым шагом.
func NewScheduler(store *reminders.Store, announcer domain.Announcer, logger zerolog.Logger, interval, cleanupWindow time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if cleanupWindow <= 0 {
		cleanupWindow = 30 * time.Second
	}
	return &Scheduler{
		store:         store,
		announcer:     announcer,
		log:           logger,
		interval:      interval,
		cleanupWindow: cleanupWindow,
	}
}

// Run крутит цикл тиков до отмены контекста. Отмена кооперативная:
// начатый тик дорабатывает до конца.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.log.Info().Dur("interval", s.interval).Msg("scheduler: запущен")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler: остановлен")
			return
		case now := <-ticker.C:
			s.Tick(ctx, now)
		}
	}
}

// Tick выполняет один проход: доставка подошедших напоминаний и проверка
// дедлайна еженедельной очистки. Паника внутри тика гасится, цикл
// продолжается.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("scheduler: тик завершился паникой")
		}
	}()

	fired := s.store.FireDue(ctx, now)
	for _, r := range fired {
		metrics.RemindersFiredTotal.Inc()
		msg := "Напоминание: " + r.Title()
		if r.Priority.Urgent() {
			msg = "Важно: " + msg
		}
		// доставка не должна задерживать цикл
		go s.announcer.Speak(msg)
	}

	if s.nextCleanup.IsZero() || now.After(s.nextCleanup.Add(s.cleanupWindow)) {
		s.nextCleanup = NextCleanup(now)
	}
	if absDuration(s.nextCleanup.Sub(now)) < s.cleanupWindow {
		removed := s.store.RemoveDone(ctx)
		if removed > 0 {
			metrics.CleanupRemovedTotal.Add(float64(removed))
			go s.announcer.Speak(fmt.Sprintf("Очистил %d завершённых.", removed))
		} else {
			go s.announcer.Speak("Нет завершённых.")
		}
		// дедлайн пересчитывается за окном, чтобы одна уборка не
		// срабатывала дважды подряд
		s.nextCleanup = NextCleanup(now.Add(s.cleanupWindow))
	}
}

// NextCleanup возвращает ближайшее воскресенье 19:00 строго в будущем.
func NextCleanup(now time.Time) time.Time {
	ahead := (int(time.Sunday) - int(now.Weekday()) + 7) % 7
	deadline := time.Date(now.Year(), now.Month(), now.Day(), 19, 0, 0, 0, now.Location()).AddDate(0, 0, ahead)
	if !deadline.After(now) {
		deadline = deadline.AddDate(0, 0, 7)
	}
	return deadline
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
