package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/storage"
	serr "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/errors"
)

// UsersRepository хранит учётные записи в коллекции users.
type UsersRepository struct {
	coll *storage.Collection[models.User]
	now  func() time.Time
}

func NewUsersRepository(coll *storage.Collection[models.User]) *UsersRepository {
	return &UsersRepository{coll: coll, now: utcNow}
}

// WithClock подменяет источник времени (для тестов).
func (r *UsersRepository) WithClock(now func() time.Time) *UsersRepository {
	r.now = now
	return r
}

// Create добавляет пользователя.
//
// Уникальность username и email проверяется внутри того же Mutate, что и запись,
// поэтому два параллельных Create с одним username не пройдут оба.
//
// Ошибки:
//   - ErrAlreadyExists если username или email заняты (ничего не записывается)
//   - ErrPersistence если коллекцию не удалось сохранить
func (r *UsersRepository) Create(ctx context.Context, username, email, passwordHash string) (uuid.UUID, error) {
	id := storage.NewID()

	err := r.coll.Mutate(ctx, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Username == username || u.Email == email {
				return nil, serr.ErrAlreadyExists
			}
		}
		return append(users, models.User{
			ID:           id,
			Username:     username,
			Email:        email,
			PasswordHash: passwordHash,
			CreatedAt:    r.now(),
		}), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// GetByIdentifier ищет пользователя по username или email.
func (r *UsersRepository) GetByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	for _, u := range r.coll.Read(ctx) {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return models.User{}, serr.ErrNotFound
}

func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	for _, u := range r.coll.Read(ctx) {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, serr.ErrNotFound
}
