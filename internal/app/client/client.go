package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/exp/slog"

	"vidshare/internal/app/client/config"
	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
)

// App связывает сессию, HTTP клиент и локальный кэш списка видео
type App struct {
	config     *config.Config
	log        *slog.Logger
	session    *Session
	httpClient *httpClient
	storage    Storage
	now        func() time.Time
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	// Хранилище токена: файл в директории конфигурации
	session := NewSession(NewFileTokenStore(cfg.TokenPath), log)

	// Инициализируем локальное хранилище (используем SQLite)
	var storage Storage
	sqliteStorage, err := NewSQLiteStorage(cfg.CachePath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		storage = NewMemoryStorage()
	} else {
		storage = sqliteStorage
	}

	return NewWithDeps(cfg, log, session, storage)
}

// NewWithDeps собирает App из готовых зависимостей
func NewWithDeps(cfg *config.Config, log *slog.Logger, session *Session, storage Storage) (*App, error) {
	// Инициализируем HTTP клиент
	httpCl, err := NewHTTPClient(cfg, session, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	return &App{
		config:     cfg,
		log:        log,
		session:    session,
		httpClient: httpCl,
		storage:    storage,
		now:        time.Now,
	}, nil
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Session() *Session {
	return a.session
}

func (a *App) IsAuthenticated() bool {
	return a.session.Authenticated()
}

// CheckConnection проверяет, что сервер отвечает.
// Любой HTTP-ответ, включая 401, означает, что сервер доступен.
func (a *App) CheckConnection(ctx context.Context) error {
	_, err := a.httpClient.ListVideos(ctx)
	if err == nil {
		return nil
	}
	if _, ok := AsAPIError(err); ok {
		return nil
	}
	return err
}

// RequireAuth возвращает ErrNotAuthenticated, если токена нет
func (a *App) RequireAuth() error {
	if !a.session.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

func (a *App) Register(ctx context.Context, req user.RegisterRequest) (*user.RegisterResponse, error) {
	resp, err := a.httpClient.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	a.log.Info("Пользователь зарегистрирован", "username", req.Username)
	return resp, nil
}

func (a *App) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	resp, err := a.httpClient.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	a.log.Debug("Вход выполнен", "email", req.Email)
	return resp, nil
}

// ListVideos получает список с сервера и обновляет кэш
func (a *App) ListVideos(ctx context.Context) ([]video.Video, error) {
	videos, err := a.httpClient.ListVideos(ctx)
	if err != nil {
		return nil, err
	}

	if err := a.storage.ReplaceVideos(videos, a.now()); err != nil {
		a.log.Warn("Не удалось обновить кэш видео", "error", err)
	}
	return videos, nil
}

// CachedVideos возвращает последний успешно полученный список
func (a *App) CachedVideos() ([]video.Video, time.Time, error) {
	videos, err := a.storage.ListVideos()
	if err != nil {
		return nil, time.Time{}, err
	}

	fetchedAt, err := a.storage.LastFetched()
	if err != nil {
		return nil, time.Time{}, err
	}
	return videos, fetchedAt, nil
}

func (a *App) UploadVideo(ctx context.Context, req video.UploadRequest) (*video.UploadResponse, error) {
	resp, err := a.httpClient.UploadVideo(ctx, req)
	if err != nil {
		return nil, err
	}

	a.log.Info("Видео загружено", "id", resp.ID, "title", req.Title)
	return resp, nil
}

func (a *App) RecordView(ctx context.Context, id string) error {
	return a.httpClient.RecordView(ctx, id)
}

func (a *App) DeleteVideo(ctx context.Context, id string) error {
	if err := a.httpClient.DeleteVideo(ctx, id); err != nil {
		return err
	}

	a.log.Info("Видео удалено", "id", id)
	return nil
}

// FindVideo ищет видео по идентификатору в свежем списке
func (a *App) FindVideo(ctx context.Context, id string) (*video.Video, error) {
	videos, err := a.ListVideos(ctx)
	if err != nil {
		return nil, err
	}

	for i := range videos {
		if videos[i].ID == id {
			return &videos[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", video.ErrNotFound, id)
}

func (a *App) MediaURL(filePath string) string {
	return a.httpClient.MediaURL(filePath)
}

func (a *App) Download(ctx context.Context, filePath string, w io.Writer) (int64, error) {
	return a.httpClient.Download(ctx, filePath, w)
}

// Close освобождает локальные ресурсы
func (a *App) Close() error {
	if a.storage == nil {
		return nil
	}
	return a.storage.Close()
}
