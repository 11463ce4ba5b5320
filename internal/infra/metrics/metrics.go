package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_commands_total",
		Help: "Количество распознанных команд по видам",
	}, []string{"command"})

	ClarificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_clarifications_total",
		Help: "Количество открытых уточняющих диалогов по видам",
	}, []string{"kind"})

	RemindersFiredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assistant_reminders_fired_total",
		Help: "Количество сработавших напоминаний",
	})

	CleanupRemovedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assistant_cleanup_removed_total",
		Help: "Количество удалённых при очистке завершённых напоминаний",
	})

	AnnounceErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assistant_announce_errors_total",
		Help: "Ошибки доставки сообщений пользователю",
	})

	PersistErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assistant_persist_errors_total",
		Help: "Ошибки сохранения списка напоминаний",
	})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		CommandsTotal,
		ClarificationsTotal,
		RemindersFiredTotal,
		CleanupRemovedTotal,
		AnnounceErrors,
		PersistErrors,
	)
}

// IncCommand увеличивает счётчик команд.
func IncCommand(command string) {
	if command == "" {
		command = "unknown"
	}
	CommandsTotal.WithLabelValues(command).Inc()
}

// IncClarification увеличивает счётчик уточняющих диалогов.
func IncClarification(kind string) {
	ClarificationsTotal.WithLabelValues(kind).Inc()
}
