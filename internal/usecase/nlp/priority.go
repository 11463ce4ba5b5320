package nlp

import (
	"strings"

	"voice-reminder-bot/internal/domain"
)

// priorityTiers перебираются по убыванию важности; первый уровень, чьё
// ключевое слово встретилось в тексте, выигрывает. У низкого приоритета
// ключевых слов нет — это значение по умолчанию.
var priorityTiers = []struct {
	level    domain.Priority
	keywords []string
}{
	{domain.PriorityCritical, []string{"срочно", "очень важно", "пиздец", "критично", "ни при каких обстоятельствах", "обязательно"}},
	{domain.PriorityHigh, []string{"важно", "приоритет", "в первую очередь", "максимально быстро", "как можно скорее"}},
	{domain.PriorityMedium, []string{"желательно", "по возможности", "потом", "как будет время"}},
	{domain.PriorityLow, nil},
}

// AnalyzePriority определяет уровень важности по ключевым словам. Чистая
// функция: один и тот же текст всегда даёт один и тот же уровень.
func AnalyzePriority(text string) domain.Priority {
	t := strings.ToLower(text)
	for _, tier := range priorityTiers {
		for _, kw := range tier.keywords {
			if strings.Contains(t, kw) {
				return tier.level
			}
		}
	}
	return domain.PriorityLow
}
