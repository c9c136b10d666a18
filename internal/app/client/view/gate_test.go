package view

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewGate_InitialScreen(t *testing.T) {
	assert.Equal(t, ScreenLogin, NewGate(newSession(""), discard).Screen())
	assert.Equal(t, ScreenVideos, NewGate(newSession("tok"), discard).Screen())
}

func TestGate_Transitions(t *testing.T) {
	session := newSession("")
	g := NewGate(session, discard)

	notified := 0
	unsubscribe := g.Subscribe(func() { notified++ })

	g.ShowRegister()
	assert.Equal(t, ScreenRegister, g.Screen())
	g.ShowLogin()
	assert.Equal(t, ScreenLogin, g.Screen())
	// повторный переход на тот же экран не уведомляет
	g.ShowLogin()
	assert.Equal(t, 2, notified)

	_ = session.SetToken("tok")
	g.LoginSucceeded()
	assert.Equal(t, ScreenVideos, g.Screen())

	// с экрана видео на регистрацию не переходим
	g.ShowRegister()
	assert.Equal(t, ScreenVideos, g.Screen())

	assert.NoError(t, g.Logout())
	assert.Equal(t, ScreenLogin, g.Screen())
	assert.False(t, session.Authenticated())

	unsubscribe()
	g.ShowRegister()
	assert.Equal(t, 4, notified)
}

type failingStore struct{}

func (failingStore) Load() (string, error) { return "tok", nil }
func (failingStore) Save(string) error     { return nil }
func (failingStore) Clear() error          { return errors.New("read-only") }

func TestGate_LogoutSwitchesEvenOnStoreError(t *testing.T) {
	g := NewGate(clientSession(failingStore{}), discard)
	assert.Equal(t, ScreenVideos, g.Screen())

	assert.Error(t, g.Logout())
	assert.Equal(t, ScreenLogin, g.Screen())
}

func TestScreen_String(t *testing.T) {
	assert.Equal(t, "login", ScreenLogin.String())
	assert.Equal(t, "register", ScreenRegister.String())
	assert.Equal(t, "videos", ScreenVideos.String())
	assert.Equal(t, "unknown", Screen(42).String())
}
