// Package view содержит модели экранов клиента: шлюз сессии и четыре
// представления. Каждая модель хранит состояние своей формы и уведомляет
// подписчиков об изменениях; отрисовкой занимаются CLI и TUI.
package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
)

// ErrBusy повторная отправка формы до завершения предыдущей
var ErrBusy = errors.New("request already in progress")

// API операции сервиса видео, которые нужны представлениям
type API interface {
	Register(ctx context.Context, req user.RegisterRequest) (*user.RegisterResponse, error)
	Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error)
	ListVideos(ctx context.Context) ([]video.Video, error)
	UploadVideo(ctx context.Context, req video.UploadRequest) (*video.UploadResponse, error)
	RecordView(ctx context.Context, id string) error
	DeleteVideo(ctx context.Context, id string) error
	MediaURL(filePath string) string
}

// Session хранилище токена доступа
type Session interface {
	Authenticated() bool
	SetToken(token string) error
	Clear() error
}

// Confirmer запрашивает подтверждение у пользователя
type Confirmer interface {
	Confirm(message string) bool
}

// Alerter показывает пользователю блокирующее уведомление
type Alerter interface {
	Alert(message string)
}

type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

// Scheduler откладывает вызов f на d; возвращает функцию отмены
type Scheduler func(d time.Duration, f func()) (stop func() bool)

func afterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Status сообщение формы. Error=false означает сообщение об успехе.
type Status struct {
	Message string
	Error   bool
}

func (s Status) Empty() bool {
	return s.Message == ""
}

type options struct {
	redirectDelay    time.Duration
	scheduler        Scheduler
	strictMediaTypes bool
	confirmDelete    bool
	confirmer        Confirmer
	alerter          Alerter
}

type Option func(*options)

// WithRedirectDelay задержка перехода на вход после регистрации
func WithRedirectDelay(d time.Duration) Option {
	return func(o *options) { o.redirectDelay = d }
}

func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithStrictMediaTypes включает проверку типа файла по списку разрешенных
func WithStrictMediaTypes(strict bool) Option {
	return func(o *options) { o.strictMediaTypes = strict }
}

// WithConfirmDelete false отключает вопрос перед удалением
func WithConfirmDelete(confirm bool) Option {
	return func(o *options) { o.confirmDelete = confirm }
}

func WithConfirmer(c Confirmer) Option {
	return func(o *options) { o.confirmer = c }
}

func WithAlerter(a Alerter) Option {
	return func(o *options) { o.alerter = a }
}

func newOptions(opts []Option) options {
	o := options{
		redirectDelay:    2 * time.Second,
		scheduler:        afterFunc,
		strictMediaTypes: true,
		confirmDelete:    true,
		// без интерфейса пользователя удаление не подтверждается
		confirmer: ConfirmFunc(func(string) bool { return false }),
		alerter:   AlertFunc(func(string) {}),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// notifier список подписчиков модели
type notifier struct {
	subMu sync.Mutex
	subs  map[int]func()
	next  int
}

// Subscribe регистрирует fn; возвращает функцию отписки
func (n *notifier) Subscribe(fn func()) func() {
	n.subMu.Lock()
	defer n.subMu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.next
	n.next++
	n.subs[id] = fn

	return func() {
		n.subMu.Lock()
		defer n.subMu.Unlock()
		delete(n.subs, id)
	}
}

// notify вызывается без удержания мьютекса модели
func (n *notifier) notify() {
	n.subMu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
