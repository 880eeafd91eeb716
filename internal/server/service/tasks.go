package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/errors"
)

// TasksService реализует бизнес-логику работы с задачами пользователя.
// Сервис:
//   - санитизирует title/description и применяет лимиты (TasksConfig);
//   - валидирует приоритет;
//   - не знает о HTTP и формате хранения.
type TasksService struct {
	repo   TasksRepo
	limits config.TasksConfig
	log    *zap.Logger
}

// NewTasksService создаёт новый TasksService.
func NewTasksService(repo TasksRepo, limits config.TasksConfig, log *zap.Logger) *TasksService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TasksService{repo: repo, limits: limits, log: log.Named("tasks")}
}

// List возвращает задачи пользователя от новых к старым.
// При равном CreatedAt порядок определяется id.
func (s *TasksService) List(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]models.Task, error) {
	if userID == uuid.Nil {
		return nil, invalid(serr.ErrUserIDEmpty)
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, invalid(serr.ErrUnknownPriority)
	}

	tasks, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID.String() < tasks[j].ID.String()
	})
	return tasks, nil
}

func (s *TasksService) Get(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error) {
	if userID == uuid.Nil {
		return models.Task{}, invalid(serr.ErrUserIDEmpty)
	}
	return s.repo.Get(ctx, taskID, userID)
}

// Create создаёт задачу.
//
// Валидации:
//   - title непустой после санитизации;
//   - priority: пустой означает medium, неизвестный — ErrInvalidInput.
//
// При ошибке валидации ничего не записывается.
func (s *TasksService) Create(
	ctx context.Context,
	userID uuid.UUID,
	title string,
	description string,
	priority models.Priority,
) (models.Task, error) {
	if userID == uuid.Nil {
		return models.Task{}, invalid(serr.ErrUserIDEmpty)
	}

	title = s.cleanTitle(title)
	if title == "" {
		return models.Task{}, invalid(serr.ErrEmptyTitle)
	}

	priority, err := normalizePriority(priority)
	if err != nil {
		return models.Task{}, err
	}

	task, err := s.repo.Create(ctx, userID, title, s.cleanDescription(description), priority)
	if err != nil {
		s.log.Error("create task failed", zap.String("user_id", userID.String()), zap.Error(err))
		return models.Task{}, err
	}
	return task, nil
}

// Update применяет partial update. Переданный title санитизируется и должен остаться непустым.
func (s *TasksService) Update(ctx context.Context, taskID, userID uuid.UUID, patch models.TaskPatch) (models.Task, error) {
	if userID == uuid.Nil {
		return models.Task{}, invalid(serr.ErrUserIDEmpty)
	}

	var clean models.TaskPatch

	if patch.Title != nil {
		title := s.cleanTitle(*patch.Title)
		if title == "" {
			return models.Task{}, invalid(serr.ErrEmptyTitle)
		}
		clean.Title = &title
	}
	if patch.Description != nil {
		desc := s.cleanDescription(*patch.Description)
		clean.Description = &desc
	}
	if patch.Priority != nil {
		p := models.Priority(strings.ToLower(strings.TrimSpace(string(*patch.Priority))))
		if !p.Valid() {
			return models.Task{}, invalid(serr.ErrUnknownPriority)
		}
		clean.Priority = &p
	}
	clean.Completed = patch.Completed

	return s.repo.Update(ctx, taskID, userID, clean)
}

func (s *TasksService) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return invalid(serr.ErrUserIDEmpty)
	}
	return s.repo.Delete(ctx, taskID, userID)
}

// Toggle инвертирует признак выполнения и возвращает новое значение.
func (s *TasksService) Toggle(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, invalid(serr.ErrUserIDEmpty)
	}
	return s.repo.Toggle(ctx, taskID, userID)
}

func (s *TasksService) Stats(ctx context.Context, userID uuid.UUID) (models.TaskStats, error) {
	if userID == uuid.Nil {
		return models.TaskStats{}, invalid(serr.ErrUserIDEmpty)
	}
	return s.repo.Stats(ctx, userID)
}

func (s *TasksService) cleanTitle(title string) string {
	return sanitizeText(title, s.limits.MaxTitleLen, false)
}

func (s *TasksService) cleanDescription(desc string) string {
	return sanitizeText(desc, s.limits.MaxDescriptionLen, true)
}

func normalizePriority(p models.Priority) (models.Priority, error) {
	p = models.Priority(strings.ToLower(strings.TrimSpace(string(p))))
	if p == "" {
		return models.PriorityMedium, nil
	}
	if !p.Valid() {
		return "", invalid(serr.ErrUnknownPriority)
	}
	return p, nil
}

// invalid оборачивает конкретную причину в ErrInvalidInput.
func invalid(reason error) error {
	return fmt.Errorf("%w: %w", serr.ErrInvalidInput, reason)
}
