package dialog

import (
	"math/rand"

	"voice-reminder-bot/internal/domain"
)

// yesWords — закрытый словарь согласия: ответ сравнивается целиком.
var yesWords = map[string]struct{}{
	"да": {}, "ага": {}, "ок": {}, "окей": {}, "конечно": {},
	"разумеется": {}, "угу": {}, "ясен хуй": {}, "естественно": {},
}

// noWords — закрытый словарь отказа. Для решения он не обязателен: любой
// не-утвердительный ответ трактуется как отказ, словарь нужен только чтобы
// отличать явное «нет» от нераспознанной реплики в логах.
var noWords = map[string]struct{}{
	"нет": {}, "не": {}, "не надо": {}, "не нужно": {}, "отмена": {}, "неа": {},
}

func isYes(t string) bool {
	_, ok := yesWords[t]
	return ok
}

func isNo(t string) bool {
	_, ok := noWords[t]
	return ok
}

// priorityResponses — реплики подтверждения по уровню важности.
var priorityResponses = map[domain.Priority][]string{
	domain.PriorityCritical: {
		"Понял, это очень серьёзно. Зафиксировал.",
		"Срочность красная. Беру под контроль.",
		"Принято. Сверхважная задача.",
	},
	domain.PriorityHigh: {
		"Отмечаю как приоритетную.",
		"Понимаю важность. Записал.",
		"Сделаю акцент на этой задаче.",
	},
	domain.PriorityMedium: {
		"Принято без спешки.",
		"Хорошо, учту, но без приоритета.",
		"Записал. Можно сделать по возможности.",
	},
	domain.PriorityLow: {
		"Записал как обычную задачу.",
		"Готово. Без приоритета.",
		"Просто добавил в список.",
	},
}

func priorityResponse(level domain.Priority) string {
	list := priorityResponses[level]
	if len(list) == 0 {
		list = priorityResponses[domain.PriorityLow]
	}
	return list[rand.Intn(len(list))]
}
