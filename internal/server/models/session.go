package models

import (
	"time"

	"github.com/google/uuid"
)

// Session — refresh-сессия пользователя.
//
// Хранится только sha256 от refresh-токена.
type Session struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	RefreshHash []byte     `json:"refresh_hash"`
	ExpiresAt   time.Time  `json:"expires_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy  *uuid.UUID `json:"replaced_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Active сообщает, что сессия не отозвана и не истекла на момент now.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}
