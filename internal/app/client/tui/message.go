package tui

import "vidshare/internal/app/client/view"

// changedMsg одна из моделей представления уведомила подписчиков
type changedMsg struct{}

// refreshedMsg список перезапрошен. Ошибка не передается: ее уже
// записал в лог ListView, а на экране остается прежний список.
type refreshedMsg struct{}

type submittedMsg struct {
	screen view.Screen
	err    error
}

type uploadedMsg struct {
	err error
}

// viewedMsg просмотр отмечен, url - адрес потока
type viewedMsg struct {
	url string
}

type deletedMsg struct {
	deleted bool
	err     error
}
