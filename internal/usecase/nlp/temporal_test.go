package nlp

import (
	"fmt"
	"testing"
	"time"

	"voice-reminder-bot/internal/domain"
)

var monday = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func TestParseRelativeOffsets(t *testing.T) {
	cases := map[string]time.Time{
		"напомни выпить воду через 15 минут": monday.Add(15 * time.Minute),
		"через 2 часа позвонить курьеру":     monday.Add(2 * time.Hour),
		"через 3 дня":                        monday.AddDate(0, 0, 3),
		"через 1 неделю":                     monday.AddDate(0, 0, 7),
		"сдать налоги через неделю":          monday.AddDate(0, 0, 7),
		"через час":                          monday.Add(time.Hour),
	}
	for text, expected := range cases {
		got := ParseSchedule(text, monday)
		if !got.When.Equal(expected) {
			t.Fatalf("%q: ожидали %v, получили %v", text, expected, got.When)
		}
		if got.NeedsClarification {
			t.Fatalf("%q: относительный сдвиг не требует уточнения", text)
		}
	}
}

func TestParseTomorrowWithExplicitTime(t *testing.T) {
	got := ParseSchedule("напомни позвонить маме завтра в 19:30", monday)
	expected := time.Date(2024, 1, 2, 19, 30, 0, 0, time.UTC)
	if !got.When.Equal(expected) {
		t.Fatalf("ожидали %v, получили %v", expected, got.When)
	}
	if got.Repeat != nil || got.NeedsClarification {
		t.Fatalf("не ожидали повторения и уточнения: %+v", got)
	}
}

func TestParseWeekdayDefaultsToMorning(t *testing.T) {
	got := ParseSchedule("срочно подготовить отчёт в пятницу", monday)
	expected := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	if !got.When.Equal(expected) {
		t.Fatalf("ожидали %v, получили %v", expected, got.When)
	}
	if !got.NeedsClarification {
		t.Fatal("дата без времени должна требовать уточнения")
	}
}

func TestParseTodayRollsForwardPastTime(t *testing.T) {
	got := ParseSchedule("сегодня в 9 пробежка", monday)
	expected := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	if !got.When.Equal(expected) {
		t.Fatalf("прошедшее «сегодня» должно переехать на завтра: ожидали %v, получили %v", expected, got.When)
	}
}

func TestParseTimeOnlyRollsToTomorrow(t *testing.T) {
	got := ParseSchedule("зарядка в 8 утра", monday)
	expected := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	if !got.When.Equal(expected) {
		t.Fatalf("ожидали %v, получили %v", expected, got.When)
	}
	if got.NeedsClarification {
		t.Fatal("явное время не требует уточнения")
	}
}

func TestParseFallbackTenMinutes(t *testing.T) {
	got := ParseSchedule("напомни посмотреть фильм", monday)
	if !got.When.Equal(monday.Add(10 * time.Minute)) {
		t.Fatalf("ожидали now+10m, получили %v", got.When)
	}
	if got.Repeat != nil || got.NeedsClarification {
		t.Fatalf("не ожидали повторения и уточнения: %+v", got)
	}
}

func TestRecurrenceDetection(t *testing.T) {
	cases := map[string]domain.RecurrenceRule{
		"пить воду каждый день":      {Kind: domain.RepeatDaily},
		"ежедневно разминка":         {Kind: domain.RepeatDaily},
		"по будням вставать в 7":     {Kind: domain.RepeatWeekdays},
		"по выходным звонить родным": {Kind: domain.RepeatWeekend},
		"каждые 2 часа пить воду":    {Kind: domain.RepeatEvery, N: 2, Unit: "часа"},
		"каждые 30 минут":            {Kind: domain.RepeatEvery, N: 30, Unit: "минут"},
	}
	for text, expected := range cases {
		got := ParseSchedule(text, monday)
		if got.Repeat == nil {
			t.Fatalf("%q: повторение не найдено", text)
		}
		if *got.Repeat != expected {
			t.Fatalf("%q: ожидали %+v, получили %+v", text, expected, *got.Repeat)
		}
	}
}

func TestRecurrenceIndependentOfRelative(t *testing.T) {
	got := ParseSchedule("каждый день пробежка через 20 минут", monday)
	if got.Repeat == nil || got.Repeat.Kind != domain.RepeatDaily {
		t.Fatalf("повторение должно сохраниться: %+v", got.Repeat)
	}
	if !got.When.Equal(monday.Add(20 * time.Minute)) {
		t.Fatalf("относительный сдвиг должен выиграть: %v", got.When)
	}
}

func TestClockTimeClamped(t *testing.T) {
	h, m, ok := ClockTime("встретимся в 25:70")
	if !ok {
		t.Fatal("ожидали распознанное время")
	}
	if h != 23 || m != 59 {
		t.Fatalf("ожидали 23:59, получили %02d:%02d", h, m)
	}
}

func TestClockTimeIdempotent(t *testing.T) {
	cases := [][2]int{{0, 0}, {7, 5}, {12, 30}, {23, 59}}
	for _, c := range cases {
		rendered := fmt.Sprintf("в %02d:%02d", c[0], c[1])
		h, m, ok := ClockTime(rendered)
		if !ok || h != c[0] || m != c[1] {
			t.Fatalf("%q: ожидали %02d:%02d, получили %02d:%02d", rendered, c[0], c[1], h, m)
		}
	}
}

func TestClockTimeKeywords(t *testing.T) {
	cases := map[string][2]int{
		"разбуди утром":      {8, 0},
		"встреча днём":       {12, 0},
		"позвонить вечером":  {20, 0},
		"встреча в 14 часов": {14, 0},
		"к 9 быть на месте":  {9, 0},
		"в 18.45 тренировка": {18, 45},
	}
	for text, expected := range cases {
		h, m, ok := ClockTime(text)
		if !ok {
			t.Fatalf("%q: время не распознано", text)
		}
		if h != expected[0] || m != expected[1] {
			t.Fatalf("%q: ожидали %02d:%02d, получили %02d:%02d", text, expected[0], expected[1], h, m)
		}
	}
}

func TestClockTimeOrDefault(t *testing.T) {
	h, m := ClockTimeOrDefault("полная ерунда")
	if h != 9 || m != 0 {
		t.Fatalf("ожидали 09:00 по умолчанию, получили %02d:%02d", h, m)
	}
}

func TestNextWeekdayStrictlyFuture(t *testing.T) {
	names := []string{"понедельник", "вторник", "среда", "четверг", "пятница", "суббота", "воскресенье"}
	for day := 0; day < 7; day++ {
		now := monday.AddDate(0, 0, day)
		for _, name := range names {
			got := NextWeekday(name, now)
			if !got.After(now) {
				t.Fatalf("%s от %v: результат %v не в будущем", name, now, got)
			}
			if got.Sub(now) > 7*24*time.Hour {
				t.Fatalf("%s от %v: результат %v дальше недели", name, now, got)
			}
		}
	}
}

func TestNextWeekdaySameDayRollsWeek(t *testing.T) {
	got := NextWeekday("понедельник", monday)
	expected := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	if !got.Equal(expected) {
		t.Fatalf("совпадение с текущим днём должно уходить на неделю: ожидали %v, получили %v", expected, got)
	}
}

func TestNextWeekdayAccusative(t *testing.T) {
	got := ParseSchedule("встреча в субботу", monday)
	if got.When.Weekday() != time.Saturday {
		t.Fatalf("ожидали субботу, получили %v", got.When.Weekday())
	}
}
