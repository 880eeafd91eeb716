package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/storage"
	serr "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/errors"
)

// TasksRepository хранит задачи в коллекции tasks.
//
// Все операции над конкретной задачей требуют пары (taskID, userID):
// задача другого пользователя неотличима от несуществующей (ErrNotFound).
type TasksRepository struct {
	coll *storage.Collection[models.Task]
	now  func() time.Time
}

func NewTasksRepository(coll *storage.Collection[models.Task]) *TasksRepository {
	return &TasksRepository{coll: coll, now: utcNow}
}

// WithClock подменяет источник времени (для тестов).
func (r *TasksRepository) WithClock(now func() time.Time) *TasksRepository {
	r.now = now
	return r
}

// List возвращает задачи пользователя, подходящие под filter, в порядке хранения.
// userID == uuid.Nil означает выборку без ограничения по владельцу.
func (r *TasksRepository) List(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]models.Task, error) {
	out := make([]models.Task, 0)
	for _, t := range r.coll.Read(ctx) {
		if userID != uuid.Nil && t.UserID != userID {
			continue
		}
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TasksRepository) Get(ctx context.Context, taskID, userID uuid.UUID) (models.Task, error) {
	for _, t := range r.coll.Read(ctx) {
		if t.ID == taskID && t.UserID == userID {
			return t, nil
		}
	}
	return models.Task{}, serr.ErrNotFound
}

// Create добавляет задачу. Поля должны быть уже санитизированы и провалидированы.
// Идентификатор и временные метки назначаются здесь.
func (r *TasksRepository) Create(
	ctx context.Context,
	userID uuid.UUID,
	title string,
	description string,
	priority models.Priority,
) (models.Task, error) {
	now := r.now()
	task := models.Task{
		ID:          storage.NewID(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.coll.Mutate(ctx, func(tasks []models.Task) ([]models.Task, error) {
		return append(tasks, task), nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// Update накладывает patch на задачу и обновляет UpdatedAt.
// Поля patch со значением nil не меняются.
func (r *TasksRepository) Update(ctx context.Context, taskID, userID uuid.UUID, patch models.TaskPatch) (models.Task, error) {
	var updated models.Task

	err := r.mutateOne(ctx, taskID, userID, func(t *models.Task) {
		patch.Apply(t)
		t.UpdatedAt = r.now()
		updated = *t
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// Toggle инвертирует Completed и возвращает новое значение.
func (r *TasksRepository) Toggle(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	var completed bool

	err := r.mutateOne(ctx, taskID, userID, func(t *models.Task) {
		t.Completed = !t.Completed
		t.UpdatedAt = r.now()
		completed = t.Completed
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}

func (r *TasksRepository) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	return r.coll.Mutate(ctx, func(tasks []models.Task) ([]models.Task, error) {
		for i, t := range tasks {
			if t.ID == taskID && t.UserID == userID {
				return append(tasks[:i], tasks[i+1:]...), nil
			}
		}
		return nil, serr.ErrNotFound
	})
}

// Stats считает статистику по задачам пользователя.
// ByPriority учитывает только незавершённые задачи.
func (r *TasksRepository) Stats(ctx context.Context, userID uuid.UUID) (models.TaskStats, error) {
	var st models.TaskStats

	for _, t := range r.coll.Read(ctx) {
		if t.UserID != userID {
			continue
		}
		st.Total++
		if t.Completed {
			st.Completed++
			continue
		}
		st.Pending++
		switch t.Priority {
		case models.PriorityHigh:
			st.ByPriority.High++
		case models.PriorityMedium:
			st.ByPriority.Medium++
		case models.PriorityLow:
			st.ByPriority.Low++
		}
	}
	return st, nil
}

// mutateOne находит задачу по (taskID, userID) и применяет к ней fn в рамках одного Mutate.
func (r *TasksRepository) mutateOne(ctx context.Context, taskID, userID uuid.UUID, fn func(t *models.Task)) error {
	return r.coll.Mutate(ctx, func(tasks []models.Task) ([]models.Task, error) {
		for i := range tasks {
			if tasks[i].ID == taskID && tasks[i].UserID == userID {
				fn(&tasks[i])
				return tasks, nil
			}
		}
		return nil, serr.ErrNotFound
	})
}
