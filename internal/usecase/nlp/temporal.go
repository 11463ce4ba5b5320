// Package nlp разбирает русские голосовые формулировки: временные выражения,
// правила повторения и приоритет. Набор идиом закрытый, совпадения ищутся
// по фиксированным таблицам, поэтому разбор детерминированный.
package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"voice-reminder-bot/internal/domain"
)

// Weekdays — названия дней недели в именительном и винительном падеже.
// Порядок фиксированный (понедельник → воскресенье, именительный раньше
// винительного): при нескольких совпадениях выигрывает первое по списку.
var Weekdays = []string{
	"понедельник", "вторник", "среда", "четверг", "пятница", "суббота", "воскресенье",
	"понедельник", "вторник", "среду", "четверг", "пятницу", "субботу", "воскресенье",
}

// weekdayIndex отображает название на номер дня, понедельник = 0.
var weekdayIndex = map[string]int{
	"понедельник": 0, "вторник": 1, "среда": 2, "среду": 2,
	"четверг": 3, "пятница": 4, "пятницу": 4,
	"суббота": 5, "субботу": 5, "воскресенье": 6,
}

var (
	clockRe    = regexp.MustCompile(`\b(\d{1,2})[.:](\d{2})\b`)
	hourRe     = regexp.MustCompile(`(?:в|к)\s*(\d{1,2})(?:\s*час[аов]?)?\b`)
	relativeRe = regexp.MustCompile(`через\s+(?:(\d+)\s*)?(минут[уы]?|час[аов]?|д(?:ень|ня|ней)|недел[яюи])`)
	everyRe    = regexp.MustCompile(`каждые?\s+(\d+)\s*(минут[уы]?|час[аов]?|д(?:ень|ня|ней)|недел[яюи])`)
)

// Schedule — результат разбора временного выражения.
type Schedule struct {
	When               time.Time
	Repeat             *domain.RecurrenceRule
	NeedsClarification bool
}

// ParseSchedule разбирает фразу относительно момента now.
// Порядок разрешения: повторение, относительный сдвиг «через N …», явное
// время, дата-якорь. Если дата известна, а время нет — срок по умолчанию
// 09:00 и требуется уточнение.
func ParseSchedule(text string, now time.Time) Schedule {
	t := strings.ToLower(text)

	repeat := detectRecurrence(t)

	if when, ok := parseRelative(t, now); ok {
		return Schedule{When: when, Repeat: repeat}
	}

	hour, minute, hasTime := ClockTime(t)

	var base time.Time
	hasBase := false
	todayAnchor := false
	switch {
	case strings.Contains(t, "послезавтра"):
		base, hasBase = now.AddDate(0, 0, 2), true
	case strings.Contains(t, "завтра"):
		base, hasBase = now.AddDate(0, 0, 1), true
	case strings.Contains(t, "сегодня"):
		base, hasBase = now, true
		todayAnchor = true
	}
	if !hasBase {
		for _, name := range Weekdays {
			if strings.Contains(t, name) {
				base, hasBase = NextWeekday(name, now), true
				break
			}
		}
	}

	if hasBase {
		if hasTime {
			when := dateAt(base, hour, minute)
			if todayAnchor && !when.After(now) {
				when = when.AddDate(0, 0, 1)
			}
			return Schedule{When: when, Repeat: repeat}
		}
		return Schedule{When: dateAt(base, 9, 0), Repeat: repeat, NeedsClarification: true}
	}

	if hasTime {
		when := dateAt(now, hour, minute)
		if !when.After(now) {
			when = when.AddDate(0, 0, 1)
		}
		return Schedule{When: when, Repeat: repeat}
	}

	return Schedule{When: now.Add(10 * time.Minute), Repeat: repeat}
}

// ClockTime извлекает время из фразы: ЧЧ:ММ или ЧЧ.ММ, «в/к Н [часов]»,
// либо слова «утром»/«днём»/«вечером». Часы и минуты зажимаются в допустимый
// диапазон.
func ClockTime(text string) (hour, minute int, ok bool) {
	if m := clockRe.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		mi, _ := strconv.Atoi(m[2])
		return clamp(h, 0, 23), clamp(mi, 0, 59), true
	}
	if m := hourRe.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		return clamp(h, 0, 23), 0, true
	}
	switch {
	case strings.Contains(text, "утр"):
		return 8, 0, true
	case strings.Contains(text, "дн"):
		return 12, 0, true
	case strings.Contains(text, "веч"):
		return 20, 0, true
	}
	return 0, 0, false
}

// ClockTimeOrDefault — как ClockTime, но с 09:00 по умолчанию.
// Используется диалогом уточнения: ответ пользователя никогда не «ошибка».
func ClockTimeOrDefault(text string) (hour, minute int) {
	if h, m, ok := ClockTime(strings.ToLower(text)); ok {
		return h, m
	}
	return 9, 0
}

// NextWeekday возвращает полночь ближайшего дня недели с данным названием,
// строго после сегодняшнего дня: совпадение с текущим днём сдвигается на
// неделю вперёд.
func NextWeekday(name string, now time.Time) time.Time {
	idx, ok := weekdayIndex[strings.ToLower(name)]
	if !ok {
		return time.Time{}
	}
	today := (int(now.Weekday()) + 6) % 7
	ahead := ((idx-today)%7 + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return dateAt(now.AddDate(0, 0, ahead), 0, 0)
}

func detectRecurrence(t string) *domain.RecurrenceRule {
	switch {
	case strings.Contains(t, "каждый день") || strings.Contains(t, "ежедневно"):
		return &domain.RecurrenceRule{Kind: domain.RepeatDaily}
	case strings.Contains(t, "по будням"):
		return &domain.RecurrenceRule{Kind: domain.RepeatWeekdays}
	case strings.Contains(t, "по выходным"):
		return &domain.RecurrenceRule{Kind: domain.RepeatWeekend}
	}
	if m := everyRe.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		return &domain.RecurrenceRule{Kind: domain.RepeatEvery, N: n, Unit: m[2]}
	}
	return nil
}

func parseRelative(t string, now time.Time) (time.Time, bool) {
	m := relativeRe.FindStringSubmatch(t)
	if m == nil {
		return time.Time{}, false
	}
	// «через неделю» без числа означает одну единицу
	n := 1
	if m[1] != "" {
		n, _ = strconv.Atoi(m[1])
	}
	return domain.AddUnit(now, n, m[2]), true
}

func dateAt(base time.Time, hour, minute int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
