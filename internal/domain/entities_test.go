package domain

import (
	"testing"
	"time"
)

func TestNextDaily(t *testing.T) {
	rule := RecurrenceRule{Kind: RepeatDaily}
	after := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	next := rule.Next(after)
	if !next.Equal(after.AddDate(0, 0, 1)) {
		t.Fatalf("ожидали +1 день, получили %v", next)
	}
}

func TestNextWeekdaysSkipsWeekend(t *testing.T) {
	rule := RecurrenceRule{Kind: RepeatWeekdays}
	// пятница 5 января 2024
	friday := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	next := rule.Next(friday)
	if next.Weekday() != time.Monday {
		t.Fatalf("ожидали понедельник, получили %v", next.Weekday())
	}
	if !next.Equal(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("ожидали 8 января, получили %v", next)
	}
}

func TestNextWeekendSkipsWeekdays(t *testing.T) {
	rule := RecurrenceRule{Kind: RepeatWeekend}
	// воскресенье 7 января 2024
	sunday := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	next := rule.Next(sunday)
	if next.Weekday() != time.Saturday {
		t.Fatalf("ожидали субботу, получили %v", next.Weekday())
	}
}

func TestNextEveryByUnit(t *testing.T) {
	after := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"минут":  after.Add(30 * time.Minute),
		"часа":   after.Add(30 * time.Hour),
		"недели": after.AddDate(0, 0, 30*7),
		"дня":    after.AddDate(0, 0, 30),
	}
	for unit, expected := range cases {
		rule := RecurrenceRule{Kind: RepeatEvery, N: 30, Unit: unit}
		if got := rule.Next(after); !got.Equal(expected) {
			t.Fatalf("единица %s: ожидали %v, получили %v", unit, expected, got)
		}
	}
}

func TestAddUnitUnknownFallsBackToDays(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	if got := AddUnit(base, 3, "фаза луны"); !got.Equal(base.AddDate(0, 0, 3)) {
		t.Fatalf("ожидали +3 дня, получили %v", got)
	}
}

func TestPriorityUrgent(t *testing.T) {
	if !PriorityCritical.Urgent() || !PriorityHigh.Urgent() {
		t.Fatal("critical и high должны считаться срочными")
	}
	if PriorityMedium.Urgent() || PriorityLow.Urgent() {
		t.Fatal("medium и low не должны считаться срочными")
	}
}

func TestTitlePlaceholder(t *testing.T) {
	r := Reminder{}
	if r.Title() != "без названия" {
		t.Fatalf("ожидали заглушку, получили %q", r.Title())
	}
}
