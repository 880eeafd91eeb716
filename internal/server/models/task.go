package models

import (
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid сообщает, входит ли приоритет в {low, medium, high}.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task — запись коллекции tasks. UserID неизменяем после создания.
type Task struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch — partial update задачи.
//
// Поля-указатели: nil означает "не менять".
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
}

// Apply накладывает патч на задачу. Валидацию полей делает сервисный слой.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

// TaskFilter сужает выборку List. Пустой фильтр возвращает всё.
type TaskFilter struct {
	Completed *bool
	Priority  Priority
}

// Match проверяет задачу на соответствие фильтру.
func (f TaskFilter) Match(t Task) bool {
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	return true
}

// PriorityBreakdown — количество незавершённых задач по приоритетам.
type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// TaskStats — агрегированная статистика задач пользователя.
//
// ByPriority считает только незавершённые задачи.
type TaskStats struct {
	Total      int               `json:"total"`
	Completed  int               `json:"completed"`
	Pending    int               `json:"pending"`
	ByPriority PriorityBreakdown `json:"by_priority"`
}
