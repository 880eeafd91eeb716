// Методы клиента для работы с задачами (/tasks).
package api

import (
	"net/url"
	"strconv"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/models"
)

// ListTasks возвращает задачи пользователя (новые первыми).
//
// completed == nil — без фильтра по выполнению, priority == "" — без фильтра по приоритету.
func (c *Client) ListTasks(accessToken string, completed *bool, priority string) ([]models.Task, error) {
	q := url.Values{}
	if completed != nil {
		q.Set("completed", strconv.FormatBool(*completed))
	}
	if priority != "" {
		q.Set("priority", priority)
	}

	path := "/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp models.ListTasksResponse
	if err := c.GetJSON(path, &resp, accessToken); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// CreateTask создаёт задачу (POST /tasks).
func (c *Client) CreateTask(accessToken string, req models.CreateTaskRequest) (models.Task, error) {
	var resp models.Task
	err := c.PostJSON("/tasks", req, &resp, accessToken)
	return resp, err
}

// GetTask возвращает задачу по id.
func (c *Client) GetTask(accessToken, id string) (models.Task, error) {
	var resp models.Task
	err := c.GetJSON("/tasks/"+url.PathEscape(id), &resp, accessToken)
	return resp, err
}

// UpdateTask частично обновляет задачу (PATCH /tasks/{id}).
func (c *Client) UpdateTask(accessToken, id string, req models.UpdateTaskRequest) (models.Task, error) {
	var resp models.Task
	err := c.PatchJSON("/tasks/"+url.PathEscape(id), req, &resp, accessToken)
	return resp, err
}

// DeleteTask удаляет задачу (DELETE /tasks/{id}).
func (c *Client) DeleteTask(accessToken, id string) error {
	return c.DeleteJSON("/tasks/"+url.PathEscape(id), nil, accessToken)
}

// ToggleTask инвертирует completed и возвращает новое значение.
func (c *Client) ToggleTask(accessToken, id string) (bool, error) {
	var resp models.ToggleTaskResponse
	err := c.PostJSON("/tasks/"+url.PathEscape(id)+"/toggle", nil, &resp, accessToken)
	return resp.Completed, err
}

// TaskStats возвращает статистику задач (GET /tasks/stats).
func (c *Client) TaskStats(accessToken string) (models.TaskStats, error) {
	var resp models.TaskStats
	err := c.GetJSON("/tasks/stats", &resp, accessToken)
	return resp, err
}
