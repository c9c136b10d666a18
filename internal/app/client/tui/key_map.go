package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap привязки клавиш интерфейса
type keyMap struct {
	next       key.Binding
	prev       key.Binding
	submit     key.Binding
	switchForm key.Binding
	upload     key.Binding
	play       key.Binding
	remove     key.Binding
	refresh    key.Binding
	logout     key.Binding
	yes        key.Binding
	no         key.Binding
	back       key.Binding
	quit       key.Binding
	forceQuit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:       key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "след. поле")),
		prev:       key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "пред. поле")),
		submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "отправить")),
		switchForm: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "вход/регистрация")),
		upload:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "загрузить")),
		play:       key.NewBinding(key.WithKeys("p", "enter"), key.WithHelp("p", "смотреть")),
		remove:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "удалить")),
		refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "обновить")),
		logout:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "выйти")),
		yes:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "да")),
		no:         key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "нет")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "назад")),
		quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "выход")),
		forceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "выход")),
	}
}
