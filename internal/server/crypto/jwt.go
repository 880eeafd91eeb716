// Package crypto содержит криптографические примитивы,
// используемые сервером TaskKeeper.
//
// В частности, пакет отвечает за:
//   - хэширование и проверку паролей (argon2id, bcrypt, legacy sha256);
//   - генерацию и подпись JWT access-токенов (HS256, iss/aud, TTL);
//   - выпуск refresh-токенов и их хэширование для хранения.
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Ошибки проверки access-токена. Текст ошибки уходит клиенту в теле 401.
var (
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenIssuer   = errors.New("invalid token issuer")
	ErrTokenAudience = errors.New("invalid token audience")
	ErrTokenSubject  = errors.New("invalid token subject")
)

// JWTConfig описывает параметры генерации JWT access-токена.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен). Пустое значение при проверке не сверяется.
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен). Пустое значение при проверке не сверяется.
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Должен быть достаточно длинным и случайным.
	SigningKey string
	// AccessTTL — срок жизни access-токена.
	AccessTTL time.Duration
}

// NewAccessToken создаёт и подписывает JWT access-токен для пользователя.
//
// Токен содержит стандартные RegisteredClaims:
//   - iss (Issuer)
//   - aud (Audience)
//   - sub (userID в виде uuid-строки)
//   - iat (IssuedAt)
//   - exp (ExpiresAt)
//
// Используется алгоритм подписи HS256.
// В случае ошибки подписи возвращается непустая ошибка.
func NewAccessToken(userID uuid.UUID, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Audience:  []string{cfg.Audience},
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseAccessToken проверяет подпись (только HS256), срок действия, iss и aud
// и возвращает userID из sub.
//
// AccessTTL при проверке не используется: срок берётся из exp самого токена.
func ParseAccessToken(tokenStr string, cfg JWTConfig) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	_, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}

	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return uuid.Nil, ErrTokenIssuer
	}
	if cfg.Audience != "" && !hasAudience(claims.Audience, cfg.Audience) {
		return uuid.Nil, ErrTokenAudience
	}

	userID, err := uuid.Parse(strings.TrimSpace(claims.Subject))
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, ErrTokenSubject
	}
	return userID, nil
}

func hasAudience(auds jwt.ClaimStrings, want string) bool {
	for _, aud := range auds {
		if aud == want {
			return true
		}
	}
	return false
}
