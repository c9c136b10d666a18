package client

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"vidshare/internal/domain/video"
	"vidshare/internal/infrastructure/migration"
)

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("ошибка создания директории кэша: %w", err)
		}
	}

	// Схема кэша принадлежит миграциям
	if err := migration.NewMigration(path, nil).Up(); err != nil {
		return nil, fmt.Errorf("ошибка применения миграций: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) ReplaceVideos(videos []video.Video, fetchedAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM videos`); err != nil {
		return fmt.Errorf("ошибка очистки кэша: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO videos (id, position, title, description, uploader, views, file_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("ошибка подготовки запроса: %w", err)
	}
	defer stmt.Close()

	for i, v := range videos {
		if _, err := stmt.Exec(v.ID, i, v.Title, v.Description, v.Uploader, v.Views, v.FilePath); err != nil {
			return fmt.Errorf("ошибка сохранения видео %s: %w", v.ID, err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO fetches (id, fetched_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET fetched_at = excluded.fetched_at
	`, fetchedAt.UnixMilli()); err != nil {
		return fmt.Errorf("ошибка сохранения времени загрузки: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStorage) ListVideos() ([]video.Video, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, uploader, views, file_path
		FROM videos
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения видео: %w", err)
	}
	defer rows.Close()

	videos := []video.Video{}
	for rows.Next() {
		var v video.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.Uploader, &v.Views, &v.FilePath); err != nil {
			return nil, fmt.Errorf("ошибка чтения видео: %w", err)
		}
		videos = append(videos, v)
	}

	return videos, rows.Err()
}

func (s *SQLiteStorage) LastFetched() (time.Time, error) {
	var ms int64
	err := s.db.QueryRow(`SELECT fetched_at FROM fetches WHERE id = 1`).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("ошибка получения времени загрузки: %w", err)
	}
	return time.UnixMilli(ms), nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
