package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Blank import required for SQLite driver registration for migrations
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator подмножество *migrate.Migrate, нужное для Up
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine - фабрика мигратора, подменяется в тестах
type MigrationEngine func(src source.Driver, databaseURL string) (Migrator, error)

// Migration применяет схему кэша к файлу SQLite
type Migration struct {
	dbPath string
	engine MigrationEngine
}

func NewMigration(dbPath string, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		dbPath: dbPath,
		engine: engine,
	}
}

// DefaultEngine - реальная реализация поверх встроенных миграций
func DefaultEngine(src source.Driver, databaseURL string) (Migrator, error) {
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// Up применяет все миграции кэша; ErrNoChange не считается ошибкой.
// Ошибки закрытия источника и базы добавляются к результату.
func (mg *Migration) Up() (err error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("источник миграций: %w", err)
	}

	m, err := mg.engine(src, "sqlite3://"+mg.dbPath)
	if err != nil {
		return fmt.Errorf("инициализация миграций %s: %w", mg.dbPath, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		err = errors.Join(err, srcErr, dbErr)
	}()

	if upErr := m.Up(); upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("применение миграций: %w", upErr)
	}
	return nil
}
