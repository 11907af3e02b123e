package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "vscreens/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"vscreens/internal/auth"
	"vscreens/internal/cache"
	"vscreens/internal/config"
	"vscreens/internal/db"
	apperrors "vscreens/internal/errors"
	"vscreens/internal/handler"
	"vscreens/internal/logging"
	"vscreens/internal/repository"
	"vscreens/internal/router"
	"vscreens/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Virtual Screens API
// @version 1.0
// @description Multi-user store of named text screens with token authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access_token from /auth/login. Clients may instead send the token as the "token" field of the JSON body.
func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		fatal(ctx, log, "invalid configuration", err)
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		fatal(ctx, log, "database init", err)
	}

	if cfg.ResetDB {
		log.Warn(ctx, "RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		fatal(ctx, log, "auto-migrate", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn(ctx, "redis unreachable, revoked sessions will be checked against the database only", "addr", cfg.RedisAddr, "error", apperrors.Redact(err))
		}
		defer cacheClient.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	screenRepo := repository.NewScreenRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)

	// Initialize auth components
	var issuer auth.CredentialIssuer
	switch cfg.CredentialMode {
	case config.CredentialModeSession:
		issuer = auth.NewSessionStore(sessionRepo, cacheClient, log)
	default:
		secret := cfg.JWTSecret
		if secret == "" {
			secret, err = auth.GenerateSecret()
			if err != nil {
				fatal(ctx, log, "generate signing key", err)
			}
			log.Warn(ctx, "JWT_SECRET not set, using a random signing key; issued tokens will not survive a restart")
		}
		issuer = auth.NewJWTService(secret, cfg.TokenTTL)
	}
	log.Info(ctx, "credential mode selected", "mode", cfg.CredentialMode)

	// Initialize services
	authService := service.NewAuthService(userRepo, issuer, log)
	screenService := service.NewScreenService(screenRepo, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	screenHandler := handler.NewScreenHandler(screenService)

	e := echo.New()
	e.HidePort = true

	// Register routes
	router.Register(e, cfg, log, authService, authHandler, screenHandler)

	log.Info(ctx, "swagger documentation available", "url", swaggerURL(cfg))

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info(ctx, "server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(ctx, log, "server start", err)
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown", "error", err)
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimSuffix(host, "/") + "/swagger/index.html"
}

func fatal(ctx context.Context, log logging.Logger, msg string, err error) {
	log.Error(ctx, msg, "error", err)
	os.Exit(1)
}
