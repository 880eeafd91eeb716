// Package storage содержит примитив хранения коллекций записей.
//
// Контракт хранения — "вся коллекция целиком":
//   - Load читает весь документ коллекции;
//   - Save атомарно заменяет весь документ коллекции;
//   - частичных обновлений и индексов нет.
//
// Поверх Backend работает Collection[T]: один мьютекс на коллекцию удерживается
// на всём цикле чтение → изменение в памяти → запись.
//
// Реализации Backend:
//   - FileBackend: <dir>/<name>.json, атомарная замена через rename;
//   - SQLBackend: таблица collections в PostgreSQL (pgx) или SQLite (modernc).
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotExist возвращается Backend.Load, если коллекция ещё ни разу не сохранялась.
var ErrNotExist = errors.New("collection does not exist")

// Backend — долговременное хранилище документов коллекций.
type Backend interface {
	// Load возвращает документ коллекции name или ErrNotExist.
	Load(ctx context.Context, name string) ([]byte, error)
	// Save атомарно заменяет документ коллекции name.
	Save(ctx context.Context, name string, data []byte) error
	// Close освобождает ресурсы backend.
	Close() error
}

// NewID генерирует непрозрачный идентификатор записи (UUID v4).
func NewID() uuid.UUID {
	return uuid.New()
}
