// Серверные модели записей коллекций (users, tasks, sessions)
package models

import (
	"time"

	"github.com/google/uuid"
)

// User — запись коллекции users.
//
// PasswordHash хранит закодированный digest пароля (argon2id/bcrypt/sha256),
// plaintext никогда не сохраняется.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserView — редактированное представление пользователя без digest пароля.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// View возвращает представление пользователя без учётных данных.
func (u User) View() UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
