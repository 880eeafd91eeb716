package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/errors"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// AuthService реализует бизнес-логику аутентификации и управления сессиями.
//
// Ответственность:
//   - регистрация пользователей
//   - проверка учётных данных и получение пользователя по id
//   - выпуск access / refresh токенов
//   - обновление access токенов по refresh
//   - rotation refresh токенов
//   - reuse detection (защита от повторного использования refresh)
type AuthService struct {
	users    UsersRepo
	sessions SessionsRepo
	log      *zap.Logger

	hasher    crypto.Hasher
	minPasswd int
	jwt       crypto.JWTConfig

	refreshTTL     time.Duration
	rotateRefresh  bool
	reuseDetection bool

	now func() time.Time
}

// TokenPair представляет пару access / refresh токенов.
type TokenPair struct {
	UserID       uuid.UUID
	AccessToken  string
	RefreshToken string
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, sessions SessionsRepo, cfg *config.Config, log *zap.Logger) (*AuthService, error) {
	if log == nil {
		log = zap.NewNop()
	}

	hasher, err := crypto.NewHasher(
		cfg.Password.Hasher,
		crypto.Argon2Params{
			Time:      cfg.Password.Argon2.Time,
			MemoryKiB: cfg.Password.Argon2.MemoryKiB,
			Threads:   cfg.Password.Argon2.Threads,
			KeyLen:    cfg.Password.Argon2.KeyLen,
			SaltLen:   cfg.Password.Argon2.SaltLen,
		},
		cfg.Password.Bcrypt.Cost,
	)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log.Named("auth"),

		hasher:    hasher,
		minPasswd: cfg.Password.MinLength,
		jwt: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			AccessTTL:  cfg.Auth.AccessTTL,
		},

		refreshTTL:     cfg.Auth.RefreshTTL,
		rotateRefresh:  cfg.Auth.Sessions.RotateRefresh,
		reuseDetection: cfg.Auth.Sessions.ReuseDetection,

		now: time.Now,
	}, nil
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - username: 3–32 символа [A-Za-z0-9_.-]
//   - email обязателен и должен быть валидным
//   - пароль не короче password.min_length (в символах)
//
// Username и email сравниваются после обрезки пробелов, регистр учитывается.
//
// Возвращает:
//   - id пользователя
//   - ErrInvalidInput при некорректных данных или ErrAlreadyExists если username/email заняты
func (s *AuthService) Register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if !usernameRe.MatchString(username) || !emailRe.MatchString(email) ||
		strings.TrimSpace(password) == "" || utf8.RuneCountInString(password) < s.minPasswd {
		return uuid.Nil, serr.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Error("hash password failed", zap.Error(err))
		return uuid.Nil, serr.ErrInternal
	}

	id, err := s.users.Create(ctx, username, email, hash)
	if err != nil {
		return uuid.Nil, err
	}
	s.log.Info("user registered", zap.String("user_id", id.String()))
	return id, nil
}

// Authenticate проверяет учётные данные.
//
// identifier — username или email. Неизвестный пользователь и неверный пароль
// неотличимы: в обоих случаях ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (models.UserView, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return models.UserView{}, serr.ErrInvalidCredentials
	}

	u, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		// не палим существование пользователя
		if errors.Is(err, serr.ErrNotFound) {
			return models.UserView{}, serr.ErrInvalidCredentials
		}
		return models.UserView{}, err
	}

	ok, err := crypto.VerifyAny(password, u.PasswordHash)
	if err != nil {
		s.log.Warn("stored password digest is unreadable", zap.String("user_id", u.ID.String()), zap.Error(err))
		return models.UserView{}, serr.ErrInvalidCredentials
	}
	if !ok {
		return models.UserView{}, serr.ErrInvalidCredentials
	}
	return u.View(), nil
}

// GetUser возвращает пользователя по id без учётных данных.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (models.UserView, error) {
	if id == uuid.Nil {
		return models.UserView{}, serr.ErrNotFound
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.UserView{}, err
	}
	return u.View(), nil
}

// Login аутентифицирует пользователя и выдаёт пару токенов.
//
// Поведение:
//   - не раскрывает факт существования пользователя
//   - при успехе создаёт refresh-сессию
//   - возвращает профиль, прочитанный при проверке пароля
//
// Ошибки:
//   - ErrInvalidCredentials
//   - ErrPersistence если сессию не удалось сохранить
func (s *AuthService) Login(ctx context.Context, identifier, password string) (TokenPair, models.UserView, error) {
	user, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return TokenPair{}, models.UserView{}, err
	}
	pair, err := s.issue(ctx, user.ID)
	if err != nil {
		return TokenPair{}, models.UserView{}, err
	}
	return pair, user, nil
}

// Refresh обновляет access токен по refresh токену.
//
// Поддерживает:
//   - rotation refresh токенов
//   - reuse detection (отзыв всех сессий при атаке)
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrUnauthorized
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return TokenPair{}, serr.ErrInvalidInput
	}

	sess, err := s.sessions.GetByRefreshHash(ctx, crypto.HashRefreshToken(refreshToken))
	if err != nil {
		return TokenPair{}, err
	}

	now := s.now()
	if !sess.ExpiresAt.After(now) {
		return TokenPair{}, serr.ErrUnauthorized
	}

	// если токен уже отозван — значит кто-то пытается переиспользовать
	if sess.RevokedAt != nil {
		if s.reuseDetection {
			s.log.Warn("refresh token reuse detected", zap.String("user_id", sess.UserID.String()))
			if err := s.sessions.RevokeAllForUser(ctx, sess.UserID); err != nil {
				return TokenPair{}, err
			}
		}
		return TokenPair{}, serr.ErrUnauthorized
	}

	access, err := crypto.NewAccessToken(sess.UserID, s.jwt)
	if err != nil {
		return TokenPair{}, serr.ErrInternal
	}

	// если rotate_refresh выключен — возвращаем только новый access, refresh тот же
	if !s.rotateRefresh {
		return TokenPair{UserID: sess.UserID, AccessToken: access, RefreshToken: refreshToken}, nil
	}

	// rotation: выдаём новый refresh
	newRefresh, err := crypto.NewRefreshToken()
	if err != nil {
		return TokenPair{}, serr.ErrInternal
	}

	// старая сессия отзывается и заменяется новой атомарно;
	// проигравший параллельный refresh тем же токеном получает ErrUnauthorized
	if _, err := s.sessions.Rotate(ctx, sess.ID, crypto.HashRefreshToken(newRefresh), now.Add(s.refreshTTL)); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{UserID: sess.UserID, AccessToken: access, RefreshToken: newRefresh}, nil
}

// Logout отзывает все refresh-сессии пользователя.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return serr.ErrUnauthorized
	}
	return s.sessions.RevokeAllForUser(ctx, userID)
}

func (s *AuthService) issue(ctx context.Context, userID uuid.UUID) (TokenPair, error) {
	// создаём новый access токен
	access, err := crypto.NewAccessToken(userID, s.jwt)
	if err != nil {
		return TokenPair{}, serr.ErrInternal
	}
	// создаём новый refresh токен
	refresh, err := crypto.NewRefreshToken()
	if err != nil {
		return TokenPair{}, serr.ErrInternal
	}
	// в хранилище только хэш
	if _, err := s.sessions.Create(ctx, userID, crypto.HashRefreshToken(refresh), s.now().Add(s.refreshTTL)); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{UserID: userID, AccessToken: access, RefreshToken: refresh}, nil
}
