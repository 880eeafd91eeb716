package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "modernc.org/sqlite"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/storage"
)

// OpenBackend открывает хранилище коллекций по секции storage.
//
//   - file: каталог storage.dir, по файлу на коллекцию;
//   - postgres: подключение через pgx, проверка Ping и миграции из migrations.path;
//   - sqlite: встроенная БД modernc.org/sqlite, таблица создаётся при старте.
//
// Закрывать backend должен вызывающий.
func OpenBackend(ctx context.Context, cfg *Config, log *zap.Logger) (storage.Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case "file":
		b, err := storage.NewFileBackend(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		log.Info("file storage opened", zap.String("dir", cfg.Storage.Dir))
		return b, nil

	case "postgres":
		db, err := sql.Open("pgx", cfg.Storage.DSN)
		if err != nil {
			log.Error("error to connect db", zap.Error(err))
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			log.Error("error check db connection", zap.Error(err))
			_ = db.Close()
			return nil, err
		}
		if cfg.Migrations.Enabled {
			if err := migratePostgres(db, cfg.Migrations.Path); err != nil {
				log.Error("error applying migrations", zap.Error(err))
				_ = db.Close()
				return nil, err
			}
			log.Info("migrations applied successfully")
		}
		return storage.NewSQLBackend(db, storage.DialectPostgres), nil

	case "sqlite":
		db, err := sql.Open("sqlite", cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		// один писатель на файл
		db.SetMaxOpenConns(1)

		b := storage.NewSQLBackend(db, storage.DialectSQLite)
		if err := b.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("sqlite storage opened", zap.String("dsn", cfg.Storage.DSN))
		return b, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// migratePostgres применяет миграции golang-migrate из каталога path.
// migrate.ErrNoChange ошибкой не считается.
func migratePostgres(db *sql.DB, path string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
