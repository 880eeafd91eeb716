// HTTP-хендлеры задач пользователя
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/errors"
	dto "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/models"
)

var errBadCompletedFilter = errors.New("completed must be true or false")

// ListTasks возвращает задачи текущего пользователя, новые первыми.
//
// @Summary      List tasks
// @Description  Returns tasks of the current user ordered by creation time (newest first).
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        completed query bool   false "Filter by completion"
// @Param        priority  query string false "Filter by priority (low|medium|high)"
// @Success      200 {object} dto.ListTasksResponse
// @Failure      400 {object} ErrorResponse "Bad filter"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tasks [get]
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	tasks, err := h.Svc.Tasks.List(r.Context(), userID, filter)
	if err != nil {
		h.writeServiceError(w, "list tasks", err)
		return
	}

	resp := dto.ListTasksResponse{Tasks: make([]dto.Task, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskDTO(t))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// CreateTask создаёт задачу.
//
// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateTaskRequest true "Task"
// @Success      201 {object} dto.Task
// @Failure      400 {object} ErrorResponse "Empty title, unknown priority or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tasks [post]
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	var req dto.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	task, err := h.Svc.Tasks.Create(r.Context(), userID, req.Title, req.Description, models.Priority(req.Priority))
	if err != nil {
		h.writeServiceError(w, "create task", err)
		return
	}
	WriteJSON(w, http.StatusCreated, toTaskDTO(task))
}

// GetTask возвращает задачу по id.
//
// @Summary      Get task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      200 {object} dto.Task
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Task not found"
// @Router       /tasks/{id} [get]
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.taskScope(w, r)
	if !ok {
		return
	}

	task, err := h.Svc.Tasks.Get(r.Context(), taskID, userID)
	if err != nil {
		h.writeServiceError(w, "get task", err)
		return
	}
	WriteJSON(w, http.StatusOK, toTaskDTO(task))
}

// UpdateTask частично обновляет задачу.
//
// @Summary      Update task
// @Description  Partial update: absent fields are left unchanged.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                true "Task ID"
// @Param        request body dto.UpdateTaskRequest true "Patch"
// @Success      200 {object} dto.Task
// @Failure      400 {object} ErrorResponse "Empty title, unknown priority or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Task not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tasks/{id} [patch]
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.taskScope(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	patch := models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		patch.Priority = &p
	}

	task, err := h.Svc.Tasks.Update(r.Context(), taskID, userID, patch)
	if err != nil {
		h.writeServiceError(w, "update task", err)
		return
	}
	WriteJSON(w, http.StatusOK, toTaskDTO(task))
}

// DeleteTask удаляет задачу.
//
// @Summary      Delete task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      204
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Task not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tasks/{id} [delete]
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.taskScope(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Tasks.Delete(r.Context(), taskID, userID); err != nil {
		h.writeServiceError(w, "delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleTask инвертирует флаг completed.
//
// @Summary      Toggle task completion
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      200 {object} dto.ToggleTaskResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Task not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tasks/{id}/toggle [post]
func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.taskScope(w, r)
	if !ok {
		return
	}

	completed, err := h.Svc.Tasks.Toggle(r.Context(), taskID, userID)
	if err != nil {
		h.writeServiceError(w, "toggle task", err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.ToggleTaskResponse{Completed: completed})
}

// TaskStats возвращает статистику задач пользователя.
//
// @Summary      Task statistics
// @Description  by_priority counts only incomplete tasks.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.TaskStats
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /tasks/stats [get]
func (h *Handler) TaskStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	st, err := h.Svc.Tasks.Stats(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, "task stats", err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.TaskStats{
		Total:     st.Total,
		Completed: st.Completed,
		Pending:   st.Pending,
		ByPriority: dto.PriorityCounts{
			High:   st.ByPriority.High,
			Medium: st.ByPriority.Medium,
			Low:    st.ByPriority.Low,
		},
	})
}

// taskScope достаёт пользователя из контекста и id задачи из пути.
// Невалидный id неотличим от чужой задачи: 404.
func (h *Handler) taskScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, taskID, true
}

func parseTaskFilter(r *http.Request) (models.TaskFilter, error) {
	var f models.TaskFilter
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("completed")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, errBadCompletedFilter
		}
		f.Completed = &v
	}
	f.Priority = models.Priority(strings.ToLower(strings.TrimSpace(q.Get("priority"))))
	return f, nil
}

func toTaskDTO(t models.Task) dto.Task {
	return dto.Task{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
