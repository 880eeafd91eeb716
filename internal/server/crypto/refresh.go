package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

const refreshTokenBytes = 32

// NewRefreshToken генерирует случайный refresh-токен (256 бит, base64url).
// Клиент получает токен, сервер хранит только HashRefreshToken(token).
func NewRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashRefreshToken возвращает sha256 токена. По нему SessionsRepository.GetByRefreshHash
// находит сессию, открытый токен в коллекции sessions не хранится.
func HashRefreshToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}
