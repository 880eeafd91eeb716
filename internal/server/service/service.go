// Package service содержит бизнес-логику приложения (taskkeeper).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
//
// Сервисы санитизируют и валидируют ввод, а репозитории только хранят.
package service

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . UsersRepo,TasksRepo,SessionsRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users    UsersRepo
	Tasks    TasksRepo
	Sessions SessionsRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth  *AuthService
	Tasks *TasksService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (хэширование, JWT, сессии) и TasksService (лимиты полей).
func NewServices(repos Repositories, cfg *config.Config, log *zap.Logger) (*Services, error) {
	auth, err := NewAuthService(repos.Users, repos.Sessions, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Services{
		Auth:  auth,
		Tasks: NewTasksService(repos.Tasks, cfg.Tasks, log),
	}, nil
}

// UsersRepo — репозиторий пользователей (нужен для auth/register/login).
type UsersRepo interface {
	Create(ctx context.Context, username, email, passwordHash string) (uuid.UUID, error)
	GetByIdentifier(ctx context.Context, identifier string) (models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// TasksRepo — репозиторий задач. Все операции над задачей требуют пары (taskID, userID).
type TasksRepo interface {
	List(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]models.Task, error)
	Get(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error)
	Create(ctx context.Context, userID uuid.UUID, title, description string, priority models.Priority) (models.Task, error)
	Update(ctx context.Context, taskID, userID uuid.UUID, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, taskID, userID uuid.UUID) error
	Toggle(ctx context.Context, taskID, userID uuid.UUID) (bool, error)
	Stats(ctx context.Context, userID uuid.UUID) (models.TaskStats, error)
}

type SessionsRepo interface {
	Create(ctx context.Context, userID uuid.UUID, refreshHash []byte, expiresAt time.Time) (uuid.UUID, error)
	GetByRefreshHash(ctx context.Context, refreshHash []byte) (models.Session, error)
	Rotate(ctx context.Context, oldID uuid.UUID, newHash []byte, expiresAt time.Time) (uuid.UUID, error)
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}
