package tests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/service/mocks"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/logger"
)

type testDeps struct {
	users    *svcmocks.MockUsersRepo
	tasks    *svcmocks.MockTasksRepo
	sessions *svcmocks.MockSessionsRepo
	cfg      *config.Config
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:     "issuer",
			Audience:   "audience",
			AccessTTL:  1 * time.Minute,
			RefreshTTL: 24 * time.Hour,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "supersecretkeysupersecretkey123456", // >= 32
			},
			Sessions: config.SessionsConfig{
				RotateRefresh:      true,
				ReuseDetection:     true,
				MaxSessionsPerUser: 5,
			},
		},
		Password: config.PasswordConfig{
			Hasher:    "argon2id",
			MinLength: 6,
			Argon2: config.Argon2Config{
				Time:      1,
				MemoryKiB: 8 * 1024,
				Threads:   1,
				KeyLen:    32,
				SaltLen:   16,
			},
		},
		Tasks: config.TasksConfig{
			MaxTitleLen:       200,
			MaxDescriptionLen: 2000,
		},
	}
}

// NewTestHandler создаёт Handler с моками и конфигом через dependency injection
func NewTestHandler(t *testing.T) (*api.Handler, testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	deps := testDeps{
		users:    svcmocks.NewMockUsersRepo(ctrl),
		tasks:    svcmocks.NewMockTasksRepo(ctrl),
		sessions: svcmocks.NewMockSessionsRepo(ctrl),
		cfg:      testConfig(),
	}

	svc, err := service.NewServices(service.Repositories{
		Users:    deps.users,
		Tasks:    deps.tasks,
		Sessions: deps.sessions,
	}, deps.cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("NewServices: %v", err)
	}

	verifier := middleware.NewJWTVerifier(deps.cfg.Auth.JWT.SigningKey, deps.cfg.Auth.Issuer, deps.cfg.Auth.Audience)
	log := logger.NewHTTPLogger()

	return api.NewHandler(svc, log, verifier), deps
}

// withUser кладёт userID в контекст запроса, как это делает AuthMiddleware.
func withUser(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}

// withTaskID эмулирует chi-параметр {id}.
func withTaskID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
