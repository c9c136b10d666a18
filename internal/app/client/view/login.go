package view

import (
	"context"
	"sync"

	"golang.org/x/exp/slog"

	"vidshare/internal/domain/user"
)

// LoginView форма входа
type LoginView struct {
	notifier

	api       API
	gate      *Gate
	session   Session
	log       *slog.Logger
	validator user.Validator

	mu         sync.Mutex
	creds      user.Credentials
	status     Status
	submitting bool
}

func NewLoginView(api API, gate *Gate, session Session, log *slog.Logger) *LoginView {
	return &LoginView{
		api:       api,
		gate:      gate,
		session:   session,
		log:       log.With(slog.String("component", "login_view")),
		validator: user.NewFormValidator(),
	}
}

func (v *LoginView) SetCredentials(creds user.Credentials) {
	v.mu.Lock()
	v.creds = creds
	v.mu.Unlock()
	v.notify()
}

func (v *LoginView) Credentials() user.Credentials {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.creds
}

func (v *LoginView) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *LoginView) Submitting() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submitting
}

// Submit выполняет вход. Токен из ответа сохраняется в сессии; если токена
// в ответе нет, сохраненный токен удаляется и вход считается неудачным.
func (v *LoginView) Submit(ctx context.Context) error {
	v.mu.Lock()
	if v.submitting {
		v.mu.Unlock()
		return ErrBusy
	}

	creds := v.creds
	if err := v.validator.ValidateLogin(creds); err != nil {
		v.status = Status{Message: validationMessage(err), Error: true}
		v.mu.Unlock()
		v.notify()
		return err
	}

	v.submitting = true
	v.status = Status{}
	v.mu.Unlock()
	v.notify()

	resp, err := v.api.Login(ctx, creds.Request())
	if err != nil {
		v.log.Error("Ошибка входа", "error", err)
		return v.fail(loginFailure(err), err)
	}

	if err := v.session.SetToken(resp.AccessToken); err != nil {
		v.log.Error("Не удалось сохранить токен", "error", err)
		return v.fail(MsgTokenSave, err)
	}
	if resp.AccessToken == "" {
		v.log.Warn("В ответе на вход нет access_token")
		return v.fail(MsgNoAccessToken, user.ErrNoAccessToken)
	}

	v.mu.Lock()
	v.submitting = false
	v.creds = user.Credentials{}
	v.mu.Unlock()
	v.notify()

	v.gate.LoginSucceeded()
	return nil
}

func (v *LoginView) fail(message string, err error) error {
	v.mu.Lock()
	v.submitting = false
	v.status = Status{Message: message, Error: true}
	v.mu.Unlock()

	v.notify()
	return err
}
