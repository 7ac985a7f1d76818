// Package app wires configuration, storage, services, and the HTTP
// transport together and runs the server until shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/replyflow/replyflow-backend/internal/adapter/postgres"
	auditrepo "github.com/replyflow/replyflow-backend/internal/adapter/postgres/audit"
	draftrepo "github.com/replyflow/replyflow-backend/internal/adapter/postgres/draft"
	editrepo "github.com/replyflow/replyflow-backend/internal/adapter/postgres/edithistory"
	inboxrepo "github.com/replyflow/replyflow-backend/internal/adapter/postgres/inboxitem"
	userrepo "github.com/replyflow/replyflow-backend/internal/adapter/postgres/user"
	workspacerepo "github.com/replyflow/replyflow-backend/internal/adapter/postgres/workspace"
	"github.com/replyflow/replyflow-backend/internal/adapter/provider/draftgen"
	"github.com/replyflow/replyflow-backend/internal/auth"
	"github.com/replyflow/replyflow-backend/internal/config"
	draftsvc "github.com/replyflow/replyflow-backend/internal/service/drafts"
	metricssvc "github.com/replyflow/replyflow-backend/internal/service/metrics"
	settingssvc "github.com/replyflow/replyflow-backend/internal/service/settings"
	"github.com/replyflow/replyflow-backend/internal/transport/middleware"
	"github.com/replyflow/replyflow-backend/internal/transport/rest"
)

const apiRateLimitPerMinute = 240

// Run is the application entry point. It loads configuration, connects to
// the database, assembles the service graph, and serves HTTP until the
// context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	// Repositories.
	draftR := draftrepo.New(pool)
	editR := editrepo.New(pool)
	auditR := auditrepo.New(pool)
	inboxR := inboxrepo.New(pool)
	workspaceR := workspacerepo.New(pool)
	userR := userrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	// Draft generation provider.
	generator := draftgen.NewProvider(
		cfg.Generator.BaseURL,
		cfg.Generator.APIKey,
		cfg.Generator.Timeout,
		logger,
	)

	// Services.
	draftService := draftsvc.NewService(logger, draftR, editR, auditR, inboxR, workspaceR, generator, txm)
	settingsService := settingssvc.NewService(logger, workspaceR, txm)
	metricsService := metricssvc.NewService(logger, draftR, editR, workspaceR)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	// Transport.
	router := rest.NewRouter(
		rest.NewHealthHandler(pool, BuildVersion()),
		rest.NewDraftHandler(draftService, logger),
		rest.NewSettingsHandler(settingsService, logger),
		rest.NewMetricsHandler(metricsService, logger),
		rest.NewUserHandler(userR, logger),
	)

	rl := middleware.NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.ClientInfo,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		rl.Limit(apiRateLimitPerMinute),
		middleware.Auth(jwtManager),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
