package repository

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/storage"
	serr "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/errors"
)

// SessionsRepository отвечает за хранение и управление refresh-сессиями пользователя.
//
// Используется для:
//   - хранения refresh-токенов (в виде хэшей)
//   - реализации refresh token rotation
//   - принудительного logout со всех устройств
type SessionsRepository struct {
	coll       *storage.Collection[models.Session]
	maxPerUser int
	now        func() time.Time
}

// NewSessionsRepository создает новый SessionsRepository.
// maxPerUser <= 0 отключает ограничение числа активных сессий.
func NewSessionsRepository(coll *storage.Collection[models.Session], maxPerUser int) *SessionsRepository {
	return &SessionsRepository{coll: coll, maxPerUser: maxPerUser, now: utcNow}
}

// WithClock подменяет источник времени (для тестов).
func (r *SessionsRepository) WithClock(now func() time.Time) *SessionsRepository {
	r.now = now
	return r
}

// Create создает новую refresh-сессию пользователя.
//
// В том же Mutate:
//   - удаляются истёкшие сессии (коллекция не растёт бесконечно)
//   - самые старые активные сессии пользователя сверх лимита отзываются
func (r *SessionsRepository) Create(ctx context.Context, userID uuid.UUID, refreshHash []byte, expiresAt time.Time) (uuid.UUID, error) {
	id := storage.NewID()
	now := r.now()

	err := r.coll.Mutate(ctx, func(sessions []models.Session) ([]models.Session, error) {
		sessions = dropExpired(sessions, now)
		sessions = append(sessions, models.Session{
			ID:          id,
			UserID:      userID,
			RefreshHash: refreshHash,
			ExpiresAt:   expiresAt,
			CreatedAt:   now,
		})
		r.enforceLimit(sessions, userID, now)
		return sessions, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// GetByRefreshHash возвращает сессию по хэшу refresh-токена.
//
// Ошибки:
//   - ErrUnauthorized если сессия не найдена
func (r *SessionsRepository) GetByRefreshHash(ctx context.Context, refreshHash []byte) (models.Session, error) {
	for _, s := range r.coll.Read(ctx) {
		if bytes.Equal(s.RefreshHash, refreshHash) {
			return s, nil
		}
	}
	return models.Session{}, serr.ErrUnauthorized
}

// Rotate заменяет refresh-сессию oldID новой за один Mutate:
//   - старая сессия должна существовать, не быть отозванной и не истечь
//   - старая помечается отозванной и замененной новой
//   - новая добавляется, и только после этого применяется лимит сессий
//
// Ошибки:
//   - ErrUnauthorized если старая сессия неактивна (в том числе параллельный refresh тем же токеном);
//     в этом случае ничего не записывается
func (r *SessionsRepository) Rotate(ctx context.Context, oldID uuid.UUID, newHash []byte, expiresAt time.Time) (uuid.UUID, error) {
	newID := storage.NewID()
	now := r.now()

	err := r.coll.Mutate(ctx, func(sessions []models.Session) ([]models.Session, error) {
		idx := -1
		for i := range sessions {
			if sessions[i].ID == oldID {
				idx = i
				break
			}
		}
		if idx < 0 || !sessions[idx].Active(now) {
			return nil, serr.ErrUnauthorized
		}

		userID := sessions[idx].UserID
		sessions[idx].RevokedAt = &now
		sessions[idx].ReplacedBy = &newID

		sessions = dropExpired(sessions, now)
		sessions = append(sessions, models.Session{
			ID:          newID,
			UserID:      userID,
			RefreshHash: newHash,
			ExpiresAt:   expiresAt,
			CreatedAt:   now,
		})
		r.enforceLimit(sessions, userID, now)
		return sessions, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return newID, nil
}

// RevokeAllForUser отзывает все активные refresh-сессии пользователя.
//
// Используется при logout и при обнаружении повторного использования refresh.
func (r *SessionsRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	now := r.now()

	return r.coll.Mutate(ctx, func(sessions []models.Session) ([]models.Session, error) {
		for i := range sessions {
			if sessions[i].UserID == userID && sessions[i].RevokedAt == nil {
				sessions[i].RevokedAt = &now
			}
		}
		return sessions, nil
	})
}

// DeleteExpired удаляет истёкшие сессии и возвращает их количество.
func (r *SessionsRepository) DeleteExpired(ctx context.Context) (int, error) {
	now := r.now()
	var removed int

	err := r.coll.Mutate(ctx, func(sessions []models.Session) ([]models.Session, error) {
		kept := dropExpired(sessions, now)
		removed = len(sessions) - len(kept)
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func dropExpired(sessions []models.Session, now time.Time) []models.Session {
	kept := sessions[:0]
	for _, s := range sessions {
		if s.ExpiresAt.After(now) {
			kept = append(kept, s)
		}
	}
	return kept
}

func (r *SessionsRepository) enforceLimit(sessions []models.Session, userID uuid.UUID, now time.Time) {
	if r.maxPerUser <= 0 {
		return
	}

	var active []int
	for i, s := range sessions {
		if s.UserID == userID && s.Active(now) {
			active = append(active, i)
		}
	}
	if len(active) <= r.maxPerUser {
		return
	}

	// старые первыми
	sort.SliceStable(active, func(a, b int) bool {
		return sessions[active[a]].CreatedAt.Before(sessions[active[b]].CreatedAt)
	})
	for _, i := range active[:len(active)-r.maxPerUser] {
		sessions[i].RevokedAt = &now
	}
}
