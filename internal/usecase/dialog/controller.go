// Package dialog превращает распознанные реплики в операции над
// напоминаниями. Контроллер держит не больше одного незакрытого уточнения:
// следующая реплика либо отвечает на него, либо уходит в маршрутизатор команд.
package dialog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"voice-reminder-bot/internal/domain"
	"voice-reminder-bot/internal/infra/metrics"
	"voice-reminder-bot/internal/usecase/nlp"
	"voice-reminder-bot/internal/usecase/reminders"
)

// PendingKind — вид незакрытого уточнения.
type PendingKind string

const (
	PendingAskTime       PendingKind = "ask_time"
	PendingPrealert      PendingKind = "prealert"
	PendingConfirmDelete PendingKind = "confirm_delete"
)

// pending хранит контекст уточнения: снимок базового напоминания для
// ask_time/prealert, список кандидатов для confirm_delete.
type pending struct {
	kind       PendingKind
	base       domain.Reminder
	minutes    int
	candidates []string
}

// Controller — сессия диалога с единственным слотом уточнения.
type Controller struct {
	mu        sync.Mutex
	log       zerolog.Logger
	store     *reminders.Store
	announcer domain.Announcer
	now       func() time.Time
	prealert  int
	pending   *pending
}

// Option настраивает контроллер.
type Option func(*Controller)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithPrealertMinutes задаёт упреждение предварительного напоминания.
func WithPrealertMinutes(minutes int) Option {
	return func(c *Controller) { c.prealert = minutes }
}

// NewController создаёт контроллер диалога.
func NewController(store *reminders.Store, announcer domain.Announcer, logger zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		log:       logger,
		store:     store,
		announcer: announcer,
		now:       time.Now,
		prealert:  60,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pending возвращает вид текущего уточнения, если оно есть.
func (c *Controller) Pending() (PendingKind, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return "", false
	}
	return c.pending.kind, true
}

// HandleUtterance обрабатывает одну реплику. Реплики сериализуются:
// новая ждёт, пока не разрешится предыдущая.
func (c *Controller) HandleUtterance(ctx context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := strings.TrimSpace(strings.ToLower(text))
	if t == "" {
		c.announcer.Speak("Не расслышал.")
		return
	}
	c.log.Debug().Str("utterance", t).Msg("dialog: реплика")

	if p := c.pending; p != nil {
		// слот освобождается до обработки: уточнение разрешается ровно
		// одной репликой, какой бы она ни была
		c.pending = nil
		c.resolvePending(ctx, p, t)
		return
	}
	c.route(ctx, t)
}

func (c *Controller) resolvePending(ctx context.Context, p *pending, t string) {
	switch p.kind {
	case PendingAskTime:
		hour, minute := nlp.ClockTimeOrDefault(t)
		if _, ok := c.store.SetClock(ctx, p.base.ID, hour, minute); !ok {
			c.announcer.Speak("Не нашёл напоминание.")
			return
		}
		c.announcer.Speak(fmt.Sprintf("Принял. В %02d:%02d.", hour, minute))

	case PendingPrealert:
		if !isYes(t) {
			if !isNo(t) {
				c.log.Debug().Str("answer", t).Msg("dialog: ответ не распознан, трактую как отказ")
			}
			c.announcer.Speak("Ок, без предварительного напоминания.")
			return
		}
		priority := p.base.Priority
		if priority == "" {
			priority = domain.PriorityHigh
		}
		c.store.Add(ctx, &domain.Reminder{
			Text:     "Предупреждение: " + p.base.Text,
			When:     p.base.When.Add(-time.Duration(p.minutes) * time.Minute),
			Status:   domain.StatusActive,
			Priority: priority,
		})
		c.announcer.Speak("Сделаю предварительное напоминание.")

	case PendingConfirmDelete:
		if !isYes(t) {
			if !isNo(t) {
				c.log.Debug().Str("answer", t).Msg("dialog: ответ не распознан, трактую как отказ")
			}
			c.announcer.Speak("Отменил удаление.")
			return
		}
		if removed := c.store.RemoveByID(ctx, p.candidates); removed > 0 {
			c.announcer.Speak(fmt.Sprintf("Удалил %d.", removed))
		} else {
			c.announcer.Speak("Удалять нечего.")
		}
	}
}

func (c *Controller) askTime(base domain.Reminder) {
	c.pending = &pending{kind: PendingAskTime, base: base}
	metrics.IncClarification(string(PendingAskTime))
	c.announcer.Speak("Во сколько напомнить? Назови время.")
}

func (c *Controller) offerPrealert(base domain.Reminder) {
	c.pending = &pending{kind: PendingPrealert, base: base, minutes: c.prealert}
	metrics.IncClarification(string(PendingPrealert))
	if c.prealert == 60 {
		c.announcer.Speak("Поставить предупреждение за час до этого? Скажи да или нет.")
	} else {
		c.announcer.Speak(fmt.Sprintf("Поставить предупреждение за %d минут до этого? Скажи да или нет.", c.prealert))
	}
}

func (c *Controller) confirmDelete(candidates []string) {
	c.pending = &pending{kind: PendingConfirmDelete, candidates: candidates}
	metrics.IncClarification(string(PendingConfirmDelete))
	c.announcer.Speak(fmt.Sprintf("Нашёл %d. Удалить? Скажи да или нет.", len(candidates)))
}
