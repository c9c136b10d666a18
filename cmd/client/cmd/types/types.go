// Package types содержит общие для команд CLI зависимости
package types

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"vidshare/cmd/client/cmd/prompt"
	"vidshare/internal/app/client"
	"vidshare/internal/app/client/config"
	"vidshare/internal/app/client/view"
)

type contextKey string

// ClientAppKey ключ зависимостей в контексте команды
const ClientAppKey contextKey = "app"

// Deps зависимости, которые root передает подкомандам
type Deps struct {
	App    *client.App
	Config *config.Config
	Log    *slog.Logger
	Prompt *prompt.Prompter
	JSON   bool
}

// FromContext извлекает зависимости, положенные root-командой
func FromContext(ctx context.Context) (*Deps, error) {
	deps, ok := ctx.Value(ClientAppKey).(*Deps)
	if !ok || deps == nil || deps.App == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return deps, nil
}

// Authenticated то же, что FromContext, но требует сохраненный токен.
// Запрос к серверу не выполняется.
func Authenticated(ctx context.Context) (*Deps, error) {
	deps, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := deps.App.RequireAuth(); err != nil {
		return nil, err
	}
	return deps, nil
}

// ViewOptions настройки представлений из конфигурации
func (d *Deps) ViewOptions() []view.Option {
	return []view.Option{
		view.WithRedirectDelay(d.Config.RedirectDelay),
		view.WithStrictMediaTypes(d.Config.StrictMediaTypes),
		view.WithConfirmDelete(d.Config.ConfirmDelete),
	}
}

// StatusError ошибка, текст которой уже подготовлен для пользователя
type StatusError struct {
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// FromStatus оборачивает err сообщением формы
func FromStatus(status view.Status, err error) error {
	if status.Message == "" {
		return err
	}
	return &StatusError{Message: status.Message, Err: err}
}

// ErrReported ошибка уже показана пользователю
var ErrReported = errors.New("error already reported")

// Reported помечает err как уже показанную
func Reported(err error) error {
	return fmt.Errorf("%w: %w", ErrReported, err)
}
