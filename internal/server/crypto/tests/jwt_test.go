package tests

import (
	"errors"
	"testing"
	"time"

	crypt "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/crypto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestNewAccessToken_Success(t *testing.T) {
	t.Parallel()
	cfg := crypt.JWTConfig{
		Issuer:     "taskkeeper",
		Audience:   "taskkeeper-cli",
		SigningKey: "supersecretkeysupersecretkey123456",
		AccessTTL:  5 * time.Minute,
	}

	userID := uuid.New()

	tokenStr, err := crypt.NewAccessToken(userID, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokenStr == "" {
		t.Fatal("expected non-empty token string")
	}

	// Парсим и валидируем токен
	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			// Проверяем алгоритм
			if token.Method != jwt.SigningMethodHS256 {
				t.Fatalf("unexpected signing method: %v", token.Method)
			}
			return []byte(cfg.SigningKey), nil
		},
	)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	if !parsed.Valid {
		t.Fatal("token is not valid")
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("claims type assertion failed")
	}

	if claims.Subject != userID.String() {
		t.Fatalf("expected subject %q, got %q", userID.String(), claims.Subject)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %q, got %q", cfg.Issuer, claims.Issuer)
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != cfg.Audience {
		t.Fatalf("expected audience %q, got %v", cfg.Audience, claims.Audience)
	}

	if claims.ExpiresAt == nil {
		t.Fatal("ExpiresAt is nil")
	}
	if time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Fatal("token already expired")
	}
}

func TestNewAccessToken_EmptySigningKey_TokenDoesNotValidateWithNonEmptyKey(t *testing.T) {
	cfg := crypt.JWTConfig{
		Issuer:     "issuer",
		Audience:   "aud",
		SigningKey: "", // пустой ключ
		AccessTTL:  time.Minute,
	}

	tokenStr, err := crypt.NewAccessToken(uuid.New(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokenStr == "" {
		t.Fatal("expected non-empty token string")
	}

	// Пытаемся валидировать НЕ тем ключом — должно упасть.
	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			return []byte("non-empty-key"), nil
		},
	)

	if err == nil && parsed != nil && parsed.Valid {
		t.Fatal("expected token to be invalid with different key")
	}
}

func TestNewAccessToken_ExpirationRespected(t *testing.T) {
	cfg := crypt.JWTConfig{
		Issuer:     "issuer",
		Audience:   "aud",
		SigningKey: "supersecretkeysupersecretkey123456",
		AccessTTL:  1 * time.Second,
	}

	tokenStr, err := crypt.NewAccessToken(uuid.New(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(2 * time.Second)

	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			return []byte(cfg.SigningKey), nil
		},
	)

	// jwt.ParseWithClaims вернёт ошибку по exp
	if err == nil && parsed.Valid {
		t.Fatal("expected token to be expired")
	}
}

func TestParseAccessToken(t *testing.T) {
	cfg := crypt.JWTConfig{
		Issuer:     "taskkeeper",
		Audience:   "taskkeeper-cli",
		SigningKey: "supersecretkeysupersecretkey123456",
		AccessTTL:  time.Minute,
	}
	userID := uuid.New()

	valid, err := crypt.NewAccessToken(userID, cfg)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	expiredCfg := cfg
	expiredCfg.AccessTTL = -time.Minute
	expired, _ := crypt.NewAccessToken(userID, expiredCfg)

	otherIssuer := cfg
	otherIssuer.Issuer = "other"
	foreign, _ := crypt.NewAccessToken(userID, otherIssuer)

	otherAud := cfg
	otherAud.Audience = "web"
	wrongAud, _ := crypt.NewAccessToken(userID, otherAud)

	otherKey := cfg
	otherKey.SigningKey = "anotherkeyanotherkeyanotherkey1234"
	forged, _ := crypt.NewAccessToken(userID, otherKey)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"valid", valid, nil},
		{"expired", expired, crypt.ErrTokenExpired},
		{"issuer", foreign, crypt.ErrTokenIssuer},
		{"audience", wrongAud, crypt.ErrTokenAudience},
		{"signature", forged, crypt.ErrTokenInvalid},
		{"garbage", "not-a-jwt", crypt.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := crypt.ParseAccessToken(tt.token, cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.want == nil && got != userID {
				t.Fatalf("expected user %s, got %s", userID, got)
			}
		})
	}
}

// пустые issuer/audience в конфиге проверки не сверяются
func TestParseAccessToken_OptionalClaims(t *testing.T) {
	issue := crypt.JWTConfig{Issuer: "a", Audience: "b", SigningKey: "k", AccessTTL: time.Minute}
	userID := uuid.New()

	token, err := crypt.NewAccessToken(userID, issue)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	got, err := crypt.ParseAccessToken(token, crypt.JWTConfig{SigningKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %s, got %s", userID, got)
	}
}

// HS512 с тем же ключом не принимается
func TestParseAccessToken_RejectsOtherAlgorithm(t *testing.T) {
	key := "supersecretkeysupersecretkey123456"
	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := crypt.ParseAccessToken(token, crypt.JWTConfig{SigningKey: key}); !errors.Is(err, crypt.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
