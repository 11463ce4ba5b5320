package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"voice-reminder-bot/internal/domain"
)

func tempFile(t *testing.T) *File {
	t.Helper()
	return NewFile(filepath.Join(t.TempDir(), "reminders.json"), zerolog.Nop())
}

func TestFileRoundTrip(t *testing.T) {
	f := tempFile(t)
	when := time.Date(2024, 1, 2, 19, 30, 0, 0, time.Local)
	src := []*domain.Reminder{
		{
			ID:       "a",
			Text:     "позвонить маме",
			When:     when,
			Status:   domain.StatusActive,
			Priority: domain.PriorityLow,
		},
		{
			ID:       "b",
			Text:     "пить воду",
			When:     when.Add(time.Hour),
			Repeat:   &domain.RecurrenceRule{Kind: domain.RepeatEvery, N: 2, Unit: "часа"},
			Status:   domain.StatusDone,
			Priority: domain.PriorityHigh,
		},
	}
	if err := f.Save(context.Background(), src); err != nil {
		t.Fatalf("сохранение: %v", err)
	}

	got, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("чтение: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ожидали 2 записи, получили %d", len(got))
	}
	first := got[0]
	if first.ID != "a" || first.Text != "позвонить маме" || !first.When.Equal(when) {
		t.Fatalf("первая запись искажена: %+v", first)
	}
	second := got[1]
	if second.Repeat == nil || second.Repeat.Kind != domain.RepeatEvery || second.Repeat.N != 2 {
		t.Fatalf("правило повтора потеряно: %+v", second.Repeat)
	}
	if second.Status != domain.StatusDone || second.Priority != domain.PriorityHigh {
		t.Fatalf("статус или приоритет искажены: %+v", second)
	}
}

func TestFileMissingIsEmpty(t *testing.T) {
	f := tempFile(t)
	got, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("отсутствующий файл не должен давать ошибку: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ожидали пустой список, получили %d", len(got))
	}
}

func TestFileCorruptIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	if err := os.WriteFile(path, []byte("{не json"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewFile(path, zerolog.Nop())
	got, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("повреждённый файл не должен давать ошибку: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ожидали пустой список, получили %d", len(got))
	}
}

func TestFileSkipsBadWhen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	raw := `[
  {"text": "нечитаемое", "when": "завтра утром", "status": "active", "priority": "low"},
  {"text": "читаемое", "when": "2024-01-02T19:30:00", "status": "active", "priority": "low"}
]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewFile(path, zerolog.Nop())
	got, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("чтение: %v", err)
	}
	if len(got) != 1 || got[0].Text != "читаемое" {
		t.Fatalf("должна выжить только читаемая запись: %+v", got)
	}
}

func TestFileBackfillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	raw := `[{"text": "старый формат", "when": "2024-01-02T19:30:00"}]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewFile(path, zerolog.Nop())
	got, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("чтение: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ожидали одну запись, получили %d", len(got))
	}
	r := got[0]
	if r.ID == "" {
		t.Fatal("запись без ID должна получить суррогатный ключ")
	}
	if r.Status != domain.StatusActive || r.Priority != domain.PriorityLow {
		t.Fatalf("значения по умолчанию не подставлены: %+v", r)
	}
}

func TestParseWhenLayouts(t *testing.T) {
	cases := []string{
		"2024-01-02T19:30:00",
		"2024-01-02T19:30:00.500000",
		"2024-01-02T19:30:00Z",
	}
	for _, raw := range cases {
		when, err := parseWhen(raw)
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if when.Hour() != 19 || when.Minute() != 30 {
			t.Fatalf("%q: неожиданное время %v", raw, when)
		}
	}
	if _, err := parseWhen("позавчера"); err == nil {
		t.Fatal("нечитаемый срок должен давать ошибку")
	}
}
