// @title           TaskKeeper API
// @version         1.0
// @description     Multi-user task tracker backend (TaskKeeper).
// @description     Provides user accounts, token authentication and per-user task lists.
// @termsOfService  https://example.com/terms

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin
// @contact.email  ivan@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения TaskKeeper.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера (по умолчанию ./configs/server.yaml, либо CONFIG_PATH);
//   - открытие backend хранилища коллекций (file|postgres|sqlite);
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - настройку и запуск сервера с заданными таймаутами (HTTPS если tls.enabled);
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/repository"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/service"
	"github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/shared/logger"
)

const defaultConfigPath = "./configs/server.yaml"

func main() {
	httpLogger := logger.NewHTTPLogger()
	sugar := httpLogger.Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		sugar.Fatal(err)
	}

	storeLog := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Dir:         cfg.Log.Dir,
		File:        cfg.Log.File,
		Development: cfg.Log.Development,
	})
	defer storeLog.Sync()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// открываем хранилище коллекций
	backend, err := config.OpenBackend(ctx, cfg, storeLog)
	if err != nil {
		sugar.Fatal(err)
	}
	// делаем отложенное закрытие backend
	defer func() {
		if err := backend.Close(); err != nil {
			storeLog.Warn("close storage backend", zap.Error(err))
		}
	}()

	// создаём репы
	r := repository.New(backend, storeLog, cfg.Auth.Sessions.MaxSessionsPerUser)
	repos := service.Repositories{
		Users:    r.Users,
		Tasks:    r.Tasks,
		Sessions: r.Sessions,
	}
	// создаём сервис
	svc, err := service.NewServices(repos, cfg, storeLog)
	if err != nil {
		sugar.Fatal(err)
	}
	// создаём jwt
	verifier := middleware.NewJWTVerifier(
		cfg.Auth.JWT.SigningKey,
		cfg.Auth.Issuer,
		cfg.Auth.Audience,
	)
	// создаём хандлер
	handler := api.NewHandler(svc, httpLogger, verifier)
	// создаём роутер
	router := h.NewRouter(handler, cfg.Server.MaxBodyBytes)
	//создаём сервер
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s (tls=%t, storage=%s)", addr, cfg.TLS.Enabled, cfg.Storage.Driver)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
