package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	gosync "sync"

	"golang.org/x/exp/slog"
)

// ErrNotAuthenticated возвращается командам, которым нужен токен
var ErrNotAuthenticated = errors.New("требуется аутентификация. Выполните: vidshare auth login")

// TokenStore постоянное хранилище токена доступа
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore хранит токен в файле с правами 0600
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load возвращает сохраненный токен; отсутствие файла не ошибка
func (s *FileTokenStore) Load() (string, error) {
	tokenBytes, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("ошибка чтения токена: %w", err)
	}
	return strings.TrimSpace(string(tokenBytes)), nil
}

// Save сохраняет токен аутентификации
func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("ошибка создания директории токена: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("ошибка сохранения токена: %w", err)
	}
	return nil
}

// Clear удаляет токен
func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}
	return nil
}

// MemoryTokenStore хранит токен только в памяти процесса
type MemoryTokenStore struct {
	mu    gosync.Mutex
	token string
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	return s.Save("")
}

// Session сессия приложения: токен читается один раз при создании,
// записывается при входе и удаляется при выходе.
type Session struct {
	store TokenStore
	log   *slog.Logger
	mu    gosync.RWMutex
	token string
}

// NewSession загружает токен из хранилища
func NewSession(store TokenStore, log *slog.Logger) *Session {
	s := &Session{
		store: store,
		log:   log.With(slog.String("component", "session")),
	}

	token, err := store.Load()
	if err != nil {
		s.log.Warn("Не удалось загрузить токен", "error", err)
		return s
	}
	if token != "" {
		s.token = token
		s.log.Debug("Токен загружен из хранилища")
	}

	return s
}

// Token возвращает текущий токен или пустую строку
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated true, если токен присутствует
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken сохраняет токен. Пустой токен удаляет сохраненный.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		s.token = ""
		return s.store.Clear()
	}

	if err := s.store.Save(token); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Clear удаляет токен из памяти и хранилища
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	return s.store.Clear()
}
