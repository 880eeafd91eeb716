// В этом файле описаны методы клиента для работы
// с эндпоинтами аутентификации: регистрация, вход, обновление токена, выход и
// получение информации о текущем пользователе.
package api

import "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/models"

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse описывает ответ сервера при успешной регистрации.
//
// UserID содержит идентификатор созданного пользователя.
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginRequest описывает тело запроса входа пользователя.
//
// Identifier — username или email.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginResponse описывает ответ сервера при успешном входе.
//
// AccessToken используется для авторизации запросов к защищённым эндпоинтам.
// RefreshToken используется для обновления пары токенов через /auth/refresh.
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// RefreshRequest описывает тело запроса обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse описывает ответ сервера при успешном обновлении токенов.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register выполняет регистрацию пользователя на сервере (POST /auth/register).
func (c *Client) Register(username, email, password string) (RegisterResponse, error) {
	var resp RegisterResponse
	err := c.PostJSON("/auth/register", RegisterRequest{Username: username, Email: email, Password: password}, &resp, "")
	return resp, err
}

// Login выполняет вход пользователя и получает пару токенов (POST /auth/login).
func (c *Client) Login(identifier, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.PostJSON("/auth/login", LoginRequest{Identifier: identifier, Password: password}, &resp, "")
	return resp, err
}

// Refresh обновляет пару токенов по refresh токену (POST /auth/refresh).
func (c *Client) Refresh(refreshToken string) (RefreshResponse, error) {
	var resp RefreshResponse
	err := c.PostJSON("/auth/refresh", RefreshRequest{RefreshToken: refreshToken}, &resp, "")
	return resp, err
}

// Logout отзывает все refresh-сессии пользователя (POST /auth/logout).
func (c *Client) Logout(accessToken string) error {
	return c.PostJSON("/auth/logout", nil, nil, accessToken)
}

// Me запрашивает профиль текущего пользователя (GET /me).
func (c *Client) Me(accessToken string) (models.User, error) {
	var resp models.User
	err := c.GetJSON("/me", &resp, accessToken)
	return resp, err
}
