package domain

import "context"

// Persistence сохраняет и загружает полный список напоминаний.
// Отсутствующее или повреждённое хранилище даёт пустой список, а не ошибку
// пользовательского пути: ошибками ввода-вывода занимается вызывающая сторона.
type Persistence interface {
	Load(ctx context.Context) ([]*Reminder, error)
	Save(ctx context.Context, reminders []*Reminder) error
}

// Announcer доставляет сообщение пользователю. Вызов не должен блокировать
// вызывающего и не должен возвращать ошибку в ядро.
type Announcer interface {
	Speak(text string)
}
