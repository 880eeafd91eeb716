package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
)

// Dialect — диалект SQL для SQLBackend.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// SQLBackend хранит документы коллекций в таблице collections:
//
//	collections(name TEXT PRIMARY KEY, data TEXT NOT NULL, updated_at TIMESTAMP)
//
// Save — один UPSERT, поэтому замена документа атомарна на уровне БД.
type SQLBackend struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLBackend создаёт backend поверх уже открытого *sql.DB.
func NewSQLBackend(db *sql.DB, dialect Dialect) *SQLBackend {
	return &SQLBackend{db: db, dialect: dialect}
}

// EnsureSchema создаёт таблицу collections, если её нет.
//
// Для PostgreSQL схема обычно накатывается миграциями (migrations/postgres),
// для SQLite вызывается при старте.
func (b *SQLBackend) EnsureSchema(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create collections table: %w", err)
	}
	return nil
}

func (b *SQLBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var data string

	err := b.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT data FROM collections WHERE name = %s`, b.ph(1)),
		name,
	).Scan(&data)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotExist
		}
		return nil, describeErr(fmt.Sprintf("load collection %q", name), err)
	}
	return []byte(data), nil
}

func (b *SQLBackend) Save(ctx context.Context, name string, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO collections (name, data, updated_at)
		VALUES (%s, %s, %s)
		ON CONFLICT (name) DO UPDATE
		   SET data = excluded.data,
		       updated_at = excluded.updated_at`,
		b.ph(1), b.ph(2), b.ph(3),
	)

	if _, err := b.db.ExecContext(ctx, query, name, string(data), time.Now().UTC()); err != nil {
		return describeErr(fmt.Sprintf("save collection %q", name), err)
	}
	return nil
}

func (b *SQLBackend) Close() error {
	return b.db.Close()
}

// ph возвращает плейсхолдер n-го параметра для диалекта.
func (b *SQLBackend) ph(n int) string {
	if b.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// describeErr добавляет SQLSTATE к ошибке PostgreSQL, чтобы в логах было видно
// причину (например 53100 disk_full).
func describeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: sqlstate %s: %w", op, pgErr.Code, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
