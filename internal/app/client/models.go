package client

import (
	"sync"
	"time"

	"vidshare/internal/domain/video"
)

// Storage - локальный кэш последнего успешно полученного списка видео
type Storage interface {
	// ReplaceVideos целиком заменяет кэш; частичных обновлений нет
	ReplaceVideos(videos []video.Video, fetchedAt time.Time) error
	ListVideos() ([]video.Video, error)
	// LastFetched возвращает нулевое время, если кэш ни разу не заполнялся
	LastFetched() (time.Time, error)
	Close() error
}

// MemoryStorage - временное in-memory хранилище
type MemoryStorage struct {
	mu        sync.RWMutex
	videos    []video.Video
	fetchedAt time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) ReplaceVideos(videos []video.Video, fetchedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.videos = append([]video.Video(nil), videos...)
	m.fetchedAt = fetchedAt
	return nil
}

func (m *MemoryStorage) ListVideos() ([]video.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]video.Video, len(m.videos))
	copy(out, m.videos)
	return out, nil
}

func (m *MemoryStorage) LastFetched() (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fetchedAt, nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
