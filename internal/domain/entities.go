package domain

import (
	"strings"
	"time"
)

// Priority описывает уровень важности напоминания.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Urgent сообщает, нужно ли выделять напоминание при доставке.
func (p Priority) Urgent() bool {
	return p == PriorityCritical || p == PriorityHigh
}

// Status описывает жизненный цикл напоминания.
type Status string

const (
	StatusActive Status = "active"
	StatusDone   Status = "done"
)

// RecurrenceKind — вид правила повторения.
type RecurrenceKind string

const (
	RepeatDaily    RecurrenceKind = "daily"
	RepeatWeekdays RecurrenceKind = "weekdays"
	RepeatWeekend  RecurrenceKind = "weekend"
	RepeatEvery    RecurrenceKind = "every"
)

// RecurrenceRule описывает, как сдвигается срок напоминания после срабатывания.
// Unit хранится как русское слово из исходной фразы («минут», «часа», «недели»)
// и сопоставляется по префиксу.
type RecurrenceRule struct {
	Kind RecurrenceKind `json:"kind"`
	N    int            `json:"n,omitempty"`
	Unit string         `json:"unit,omitempty"`
}

// Next возвращает следующий срок после срабатывания в момент after.
func (r RecurrenceRule) Next(after time.Time) time.Time {
	switch r.Kind {
	case RepeatDaily:
		return after.AddDate(0, 0, 1)
	case RepeatWeekdays:
		next := after.AddDate(0, 0, 1)
		for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
			next = next.AddDate(0, 0, 1)
		}
		return next
	case RepeatWeekend:
		next := after.AddDate(0, 0, 1)
		for next.Weekday() != time.Saturday && next.Weekday() != time.Sunday {
			next = next.AddDate(0, 0, 1)
		}
		return next
	case RepeatEvery:
		n := r.N
		if n < 1 {
			n = 1
		}
		return AddUnit(after, n, r.Unit)
	}
	return after.AddDate(0, 0, 1)
}

// AddUnit сдвигает момент на n русских единиц времени.
// Нераспознанная единица трактуется как день.
func AddUnit(t time.Time, n int, unit string) time.Time {
	switch {
	case strings.HasPrefix(unit, "мин"):
		return t.Add(time.Duration(n) * time.Minute)
	case strings.HasPrefix(unit, "час"):
		return t.Add(time.Duration(n) * time.Hour)
	case strings.HasPrefix(unit, "нед"):
		return t.AddDate(0, 0, 7*n)
	default:
		return t.AddDate(0, 0, n)
	}
}

// Reminder — единица работы ассистента.
// ID — суррогатный ключ, назначается при создании и сохраняется на диске.
type Reminder struct {
	ID       string
	Text     string
	When     time.Time
	Repeat   *RecurrenceRule
	Status   Status
	Priority Priority
}

// Done сообщает, завершено ли напоминание.
func (r *Reminder) Done() bool {
	return r.Status == StatusDone
}

// Title возвращает текст напоминания с подстановкой заглушки.
func (r *Reminder) Title() string {
	if r.Text == "" {
		return "без названия"
	}
	return r.Text
}
