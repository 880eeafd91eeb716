// Package api реализует HTTP-обработчики сервера TaskKeeper.
//
// Пакет отвечает за:
//   - разбор входящих запросов (JSON, параметры пути и query);
//   - формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения.
//
// Маршруты регистрируются в internal/server/net/http.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/logger"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: компонент проверки JWT и middleware авторизации.
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Verifier *middleware.JWTVerifier
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
//
// svc — набор сервисов приложения,
// log — логгер,
// verifier — JWT-проверка и middleware авторизации.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, verifier *middleware.JWTVerifier) *Handler {
	return &Handler{
		Svc:      svc,
		Log:      log,
		Verifier: verifier,
	}
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
	})
}

// WriteJSON пишет v как JSON с указанным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError переводит доменную ошибку в HTTP-ответ.
//
//   - ErrInvalidInput, ErrBadJSON → 400
//   - ErrInvalidCredentials, ErrUnauthorized → 401
//   - ErrNotFound → 404
//   - ErrAlreadyExists → 409
//   - ErrPersistence и прочее → 500 (подробности только в логе)
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, serr.ErrInvalidInput):
		// причина валидации полезна клиенту ("invalid input: title cannot be empty")
		WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, serr.ErrBadJSON):
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
	case errors.Is(err, serr.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, serr.ErrInvalidCredentials)
	case errors.Is(err, serr.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
	case errors.Is(err, serr.ErrNotFound):
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
	case errors.Is(err, serr.ErrAlreadyExists):
		WriteError(w, http.StatusConflict, serr.ErrAlreadyExists)
	case errors.Is(err, serr.ErrPersistence):
		h.Log.Error(op+" failed", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, serr.ErrPersistence)
	default:
		h.Log.Error(op+" failed", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
	}
}

// decodeJSON читает тело запроса в dst. Неизвестные поля запрещены.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return serr.ErrBadJSON
	}
	return nil
}
