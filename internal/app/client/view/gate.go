package view

import (
	"sync"

	"golang.org/x/exp/slog"
)

type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenVideos
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenRegister:
		return "register"
	case ScreenVideos:
		return "videos"
	default:
		return "unknown"
	}
}

// Gate выбирает экран по наличию токена. Токен не проверяется и не
// обновляется: его наличие считается входом.
type Gate struct {
	notifier

	session Session
	log     *slog.Logger

	mu     sync.RWMutex
	screen Screen
}

func NewGate(session Session, log *slog.Logger) *Gate {
	screen := ScreenLogin
	if session.Authenticated() {
		screen = ScreenVideos
	}

	return &Gate{
		session: session,
		log:     log.With(slog.String("component", "gate")),
		screen:  screen,
	}
}

func (g *Gate) Screen() Screen {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.screen
}

// ShowRegister переключает экран входа на регистрацию
func (g *Gate) ShowRegister() {
	g.switchUnauthenticated(ScreenRegister)
}

// ShowLogin переключает экран регистрации на вход
func (g *Gate) ShowLogin() {
	g.switchUnauthenticated(ScreenLogin)
}

func (g *Gate) switchUnauthenticated(to Screen) {
	g.mu.Lock()
	if g.screen == ScreenVideos || g.screen == to {
		g.mu.Unlock()
		return
	}
	g.screen = to
	g.mu.Unlock()

	g.notify()
}

// LoginSucceeded вызывается после сохранения токена
func (g *Gate) LoginSucceeded() {
	g.set(ScreenVideos)
	g.log.Debug("Вход выполнен, показываем список видео")
}

// Logout удаляет токен и возвращает на экран входа.
// Экран переключается даже при ошибке удаления файла токена.
func (g *Gate) Logout() error {
	err := g.session.Clear()
	if err != nil {
		g.log.Error("Не удалось удалить токен", "error", err)
	}

	g.set(ScreenLogin)
	return err
}

func (g *Gate) set(to Screen) {
	g.mu.Lock()
	g.screen = to
	g.mu.Unlock()

	g.notify()
}
