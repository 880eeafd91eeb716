package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	serr "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/errors"
)

// Collection — потокобезопасная коллекция записей типа T поверх Backend.
//
// Документ коллекции имеет вид:
//
//	{ "<name>": [ ...records... ] }
//
// Поведение:
//   - Read читает документ при каждом обращении; ошибки чтения (нет файла,
//     битый JSON, ошибка backend) деградируют в пустую коллекцию;
//   - Mutate держит мьютекс на всём цикле load → fn → save; отсутствующий или
//     битый документ считается пустым, но ошибка самого backend при чтении
//     прерывает Mutate (serr.ErrPersistence), чтобы не затереть коллекцию;
//   - ошибка Save всегда возвращается как serr.ErrPersistence, прежнее
//     содержимое при этом остаётся на месте.
type Collection[T any] struct {
	name    string
	backend Backend
	log     *zap.Logger

	mu sync.RWMutex
}

// NewCollection создаёт коллекцию name поверх backend.
func NewCollection[T any](name string, backend Backend, log *zap.Logger) *Collection[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collection[T]{
		name:    name,
		backend: backend,
		log:     log.With(zap.String("collection", name)),
	}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// Read возвращает текущее содержимое коллекции.
func (c *Collection[T]) Read(ctx context.Context) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items, err := c.load(ctx)
	if err != nil {
		c.log.Warn("read collection failed, using empty collection", zap.Error(err))
		return []T{}
	}
	return items
}

// Mutate выполняет полный цикл чтение → изменение → запись под эксклюзивной блокировкой.
//
// fn получает текущие записи и возвращает новое содержимое коллекции.
// Если fn вернула ошибку, ничего не записывается и ошибка возвращается как есть.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		c.log.Error("read collection before write failed", zap.Error(err))
		return fmt.Errorf("load collection %q: %w: %w", c.name, serr.ErrPersistence, err)
	}

	next, err := fn(items)
	if err != nil {
		return err
	}

	data, err := c.encode(next)
	if err != nil {
		c.log.Error("encode collection failed", zap.Error(err))
		return fmt.Errorf("encode collection %q: %w: %w", c.name, serr.ErrPersistence, err)
	}

	if err := c.backend.Save(ctx, c.name, data); err != nil {
		c.log.Error("save collection failed", zap.Error(err))
		return fmt.Errorf("save collection %q: %w: %w", c.name, serr.ErrPersistence, err)
	}
	return nil
}

// load возвращает ошибку только если backend не смог прочитать документ.
// Отсутствующий и битый документ дают пустую коллекцию.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.backend.Load(ctx, c.name)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return []T{}, nil
		}
		return nil, err
	}

	var dump map[string][]T
	if err := json.Unmarshal(raw, &dump); err != nil {
		c.log.Warn("decode collection failed, using empty collection", zap.Error(err))
		return []T{}, nil
	}

	items := dump[c.name]
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

func (c *Collection[T]) encode(items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.MarshalIndent(map[string][]T{c.name: items}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
