// Package app wires configuration, adapters, services and transport into a
// runnable HTTP handler and server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/myvocab-backend/internal/adapter/provider/freedict"
	"github.com/heartmarshall/myvocab-backend/internal/adapter/provider/llm"
	"github.com/heartmarshall/myvocab-backend/internal/config"
	"github.com/heartmarshall/myvocab-backend/internal/service/lookup"
	"github.com/heartmarshall/myvocab-backend/internal/transport/middleware"
	"github.com/heartmarshall/myvocab-backend/internal/transport/rest"
)

// LookupPath is the public lookup route.
const LookupPath = "/api/proxy/my-vocab-app"

// NewLookupService builds the lookup service with the adapters selected by cfg.
func NewLookupService(cfg *config.Config, logger *slog.Logger) *lookup.Service {
	return lookup.NewService(
		logger,
		cfg.LLM,
		llm.New(cfg.LLM, logger),
		freedict.NewProvider(cfg.Dictionary, logger),
	)
}

// NewHandler builds the routed, middleware-wrapped HTTP handler. The returned
// cleanup func stops background work (rate limiter eviction) and must be
// called when the handler is no longer served.
func NewHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, func()) {
	lookupHandler := rest.NewLookupHandler(NewLookupService(cfg, logger))
	healthHandler := rest.NewHealthHandler(cfg.LLM, BuildVersion())

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+LookupPath, lookupHandler.Lookup)
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	var (
		limit   middleware.Middleware
		cleanup = func() {}
	)
	if cfg.RateLimit.PerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		limit = limiter.Limit(cfg.RateLimit.PerMinute)
		cleanup = limiter.Stop
	}

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limit,
	)

	return chain(mux), cleanup
}

// Run serves the HTTP API until ctx is cancelled, then shuts down gracefully
// within cfg.Server.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	handler, cleanup := NewHandler(cfg, logger)
	defer cleanup()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting http server",
		slog.String("addr", srv.Addr),
		slog.String("version", BuildVersion()),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.Bool("llm_configured", cfg.LLM.IsConfigured()),
	)
	if missing := cfg.LLM.MissingFields(); len(missing) > 0 {
		logger.Warn("llm credentials missing; lookups will fail until configured",
			slog.Any("missing", missing),
		)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
