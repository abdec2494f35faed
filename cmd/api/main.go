package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookcatalog/internal/blob"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/logging"
	"bookcatalog/internal/web"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		zap.NewExample().Fatal("loading config failed", zap.Error(err))
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		zap.NewExample().Fatal("creating logger failed", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, err := blob.Open(ctx, cfg.Catalog.BlobOptions())
	if err != nil {
		logger.Fatal("opening blob store failed",
			zap.String("backend", cfg.Catalog.Backend),
			zap.String("dsn", blob.RedactDSN(cfg.Catalog.DSN)),
			zap.Error(err))
	}
	defer blobs.Close()
	logger.Info("blob store ready", zap.String("backend", cfg.Catalog.Backend))

	bookOpts := cfg.Catalog.BookOptions()
	manager := catalog.NewManager(ctx, blobs,
		catalog.WithBlobKey(cfg.Catalog.BlobKey),
		catalog.WithRating(bookOpts.RatingEnabled),
		catalog.WithTagPolicy(bookOpts.TagPolicy),
		catalog.WithLogger(logger),
	)

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	defer rateLimiter.Stop()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newHandler(manager, logger, cfg.HTTP, rateLimiter),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("addr", cfg.Addr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newHandler(manager *catalog.Manager, logger *zap.Logger, cfg config.HTTPConfig, rateLimiter *httpx.RateLimitMiddleware) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := manager.Ping(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	web.NewHandler(manager, logger).Register(router)
	catalog.NewHTTPHandler(manager).Register(router)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware(logger),
		httpx.AccessLogMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)
}
