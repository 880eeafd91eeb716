// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории работают поверх storage.Collection: каждая операция — это либо
// Read (снимок коллекции), либо Mutate (чтение → изменение → запись целиком
// под мьютексом коллекции). Бизнес-логики здесь нет: санитизацию и валидацию
// полей делает service. Все ошибки приводятся к доменным ошибкам из
// internal/shared/errors.
package repository

import (
	"time"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/storage"
)

// Имена коллекций. Имя коллекции совпадает с ключом верхнего уровня документа.
const (
	UsersCollection    = "users"
	TasksCollection    = "tasks"
	SessionsCollection = "sessions"
)

// Repositories — все репозитории приложения поверх одного backend.
type Repositories struct {
	Users    *UsersRepository
	Tasks    *TasksRepository
	Sessions *SessionsRepository
}

// New собирает репозитории поверх backend.
// maxSessionsPerUser ограничивает число активных refresh-сессий пользователя.
func New(backend storage.Backend, log *zap.Logger, maxSessionsPerUser int) Repositories {
	return Repositories{
		Users:    NewUsersRepository(storage.NewCollection[models.User](UsersCollection, backend, log)),
		Tasks:    NewTasksRepository(storage.NewCollection[models.Task](TasksCollection, backend, log)),
		Sessions: NewSessionsRepository(storage.NewCollection[models.Session](SessionsCollection, backend, log), maxSessionsPerUser),
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
