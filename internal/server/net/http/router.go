// Package http реализует маршрутизацию HTTP-слоя сервера TaskKeeper.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - выполняет проверку JWT access-токенов;
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/middleware"
	_ "github.com/IvanChernomyrdin/go-yandex-taskkeeper/swagger/docs"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования и ограничения тела для всех запросов;
//   - публичные эндпоинты аутентификации под префиксом /auth;
//   - группу защищённых JWT эндпоинтов (/auth/logout, /me, /tasks).
//
// maxBody — лимит тела запроса в байтах (server.max_body_bytes), 0 — без лимита.
func NewRouter(h *api.Handler, maxBody int64) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	// тело сверх лимита обрывается при чтении, обработчик отвечает 400
	if maxBody > 0 {
		r.Use(chimw.RequestSize(maxBody))
	}

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	// Публичные пути
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
	})
	// защищены пути
	r.Group(func(r chi.Router) {
		// проверка access токена
		r.Use(h.Verifier.AuthMiddleware())

		r.Post("/auth/logout", h.Logout)
		r.Get("/me", h.Me)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasks)
			r.Post("/", h.CreateTask)
			// stats раньше {id}, иначе "stats" уйдёт в параметр
			r.Get("/stats", h.TaskStats)
			r.Get("/{id}", h.GetTask)
			r.Patch("/{id}", h.UpdateTask)
			r.Delete("/{id}", h.DeleteTask)
			r.Post("/{id}/toggle", h.ToggleTask)
		})
	})

	return r
}
