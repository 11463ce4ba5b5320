package bot

import (
	"strings"
	"testing"
)

func TestSplitMessageShort(t *testing.T) {
	parts := splitMessage("Напоминание: позвонить маме")
	if len(parts) != 1 || parts[0] != "Напоминание: позвонить маме" {
		t.Fatalf("короткий текст не должен резаться: %v", parts)
	}
}

func TestSplitMessageEmpty(t *testing.T) {
	if parts := splitMessage("   "); parts != nil {
		t.Fatalf("пустой текст не даёт частей: %v", parts)
	}
}

func TestSplitMessagePrefersSeparators(t *testing.T) {
	item := "встреча с юристом — 02.01 15:04 (low)"
	var b strings.Builder
	for b.Len() < messageLimit*8 {
		b.WriteString(item)
		b.WriteString("; ")
	}
	parts := splitMessage(b.String())
	if len(parts) < 2 {
		t.Fatalf("длинный текст должен разрезаться, частей %d", len(parts))
	}
	for i, part := range parts {
		if n := len([]rune(part)); n > messageLimit {
			t.Fatalf("часть %d длиннее лимита: %d", i, n)
		}
		if strings.TrimSpace(part) == "" {
			t.Fatalf("часть %d пустая", i)
		}
	}
	joined := strings.Join(parts, " ")
	if !strings.Contains(joined, "встреча с юристом") {
		t.Fatal("содержимое потеряно при разрезании")
	}
}

func TestSplitMessageNoSeparator(t *testing.T) {
	long := strings.Repeat("а", messageLimit+10)
	parts := splitMessage(long)
	if len(parts) != 2 {
		t.Fatalf("ожидали два куска, получили %d", len(parts))
	}
	if len([]rune(parts[0])) != messageLimit {
		t.Fatalf("первый кусок должен быть ровно в лимит: %d", len([]rune(parts[0])))
	}
}
