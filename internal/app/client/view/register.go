package view

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"vidshare/internal/domain/user"
)

// RegisterView форма регистрации
type RegisterView struct {
	notifier

	api       API
	gate      *Gate
	log       *slog.Logger
	validator user.Validator
	schedule  Scheduler
	delay     time.Duration

	mu         sync.Mutex
	form       user.RegisterForm
	status     Status
	submitting bool
	cancel     func() bool
}

func NewRegisterView(api API, gate *Gate, log *slog.Logger, opts ...Option) *RegisterView {
	o := newOptions(opts)
	return &RegisterView{
		api:       api,
		gate:      gate,
		log:       log.With(slog.String("component", "register_view")),
		validator: user.NewFormValidator(),
		schedule:  o.scheduler,
		delay:     o.redirectDelay,
	}
}

func (v *RegisterView) SetForm(form user.RegisterForm) {
	v.mu.Lock()
	v.form = form
	v.mu.Unlock()
	v.notify()
}

func (v *RegisterView) Form() user.RegisterForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *RegisterView) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *RegisterView) Submitting() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submitting
}

// Submit проверяет форму и отправляет регистрацию. При успехе поля
// очищаются, а через заданную задержку шлюз переходит на экран входа.
func (v *RegisterView) Submit(ctx context.Context) error {
	v.mu.Lock()
	if v.submitting {
		v.mu.Unlock()
		return ErrBusy
	}

	form := v.form
	if err := v.validator.ValidateRegister(form); err != nil {
		v.status = Status{Message: validationMessage(err), Error: true}
		v.mu.Unlock()
		v.notify()
		return err
	}

	v.submitting = true
	v.status = Status{}
	v.mu.Unlock()
	v.notify()

	_, err := v.api.Register(ctx, form.Request())

	v.mu.Lock()
	v.submitting = false
	if err != nil {
		v.status = Status{Message: registerFailure(err), Error: true}
		v.mu.Unlock()
		v.log.Error("Ошибка регистрации", "error", err)
		v.notify()
		return err
	}

	v.status = Status{Message: MsgRegisterSuccess}
	v.form = user.RegisterForm{}
	if v.cancel != nil {
		v.cancel()
	}
	v.cancel = v.schedule(v.delay, v.gate.ShowLogin)
	v.mu.Unlock()

	v.notify()
	return nil
}

// Close отменяет отложенный переход на экран входа
func (v *RegisterView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}
