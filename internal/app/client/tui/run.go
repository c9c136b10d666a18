package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run запускает программу и пересылает в нее изменения моделей.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Send ждет, пока цикл событий заберет сообщение, а подписчики
	// вызываются и изнутри Update.
	send := func() { go p.Send(changedMsg{}) }

	unsubscribe := []func(){
		m.views.Gate.Subscribe(send),
		m.views.Login.Subscribe(send),
		m.views.Register.Subscribe(send),
		m.views.Videos.Subscribe(send),
		m.views.Videos.Upload().Subscribe(send),
	}
	defer func() {
		for _, fn := range unsubscribe {
			fn()
		}
		m.views.Register.Close()
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
