package tui

import "github.com/charmbracelet/lipgloss"

// theme оформление экранов. Цвета адаптивные: первый для светлого
// терминала, второй для темного.
type theme struct {
	heading lipgloss.Style
	ok      lipgloss.Style
	failure lipgloss.Style
	pending lipgloss.Style
	hint    lipgloss.Style
}

var styles = newTheme()

func newTheme() theme {
	fg := func(light, dark string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: light, Dark: dark})
	}
	return theme{
		heading: fg("#3B2F8F", "#A89BFF").Bold(true).MarginBottom(1),
		ok:      fg("#1F7A3A", "#5FD787").Bold(true),
		failure: fg("#B00020", "#FF6B6B").Bold(true),
		pending: fg("#9A6700", "#FFC857"),
		hint:    fg("#6E6E6E", "#8A8A8A").Italic(true),
	}
}
