// Package models содержит модели HTTP API, общие для сервера и CLI-клиента.
package models

import "time"

// Task — задача в том виде, в котором её видит клиент.
//
// Поля:
//   - ID: идентификатор задачи (UUID в виде строки)
//   - Priority: low|medium|high
//   - Completed: выполнена ли задача
//   - CreatedAt/UpdatedAt: серверные временные метки
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListTasksResponse — ответ GET /tasks (новые задачи первыми).
type ListTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

// CreateTaskRequest — запрос POST /tasks.
//
// Priority опционален: пустое значение означает medium.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// UpdateTaskRequest — partial update PATCH /tasks/{id}.
//
// Поля-указатели: отсутствующее поле не меняется.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// ToggleTaskResponse — ответ POST /tasks/{id}/toggle.
type ToggleTaskResponse struct {
	Completed bool `json:"completed"`
}

// PriorityCounts — незавершённые задачи по приоритетам.
type PriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// TaskStats — ответ GET /tasks/stats.
type TaskStats struct {
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	Pending    int            `json:"pending"`
	ByPriority PriorityCounts `json:"by_priority"`
}

// User — пользователь без учётных данных (GET /me).
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
