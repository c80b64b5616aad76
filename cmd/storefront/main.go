package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portableworkout-web/internal/cache"
	"portableworkout-web/internal/config"
	"portableworkout-web/internal/handler"
	"portableworkout-web/internal/middleware"
	"portableworkout-web/internal/observability"
	"portableworkout-web/internal/session"
	"portableworkout-web/internal/shopapi"
	"portableworkout-web/internal/view"
)

func main() {
	cfg := config.Load()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}
	observability.InitLogger(logLevel, logFormat)

	slog.Info("starting storefront")

	api := shopapi.New(cfg.BackendAPIURL)

	// Contract drift is a warning, not a startup failure: the backend may be
	// mid-deploy and the document may lag a release.
	if err := shopapi.VerifyContract(cfg.OpenAPISpecPath); err != nil {
		slog.Warn("backend contract check failed", slog.String("error", err.Error()))
	} else {
		slog.Info("backend contract verified", slog.String("spec", cfg.OpenAPISpecPath))
	}

	productCache := cache.NewProductCache(cfg.RedisAddr)
	if productCache != nil {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := productCache.Ping(pingCtx); err != nil {
			slog.Warn("redis unreachable, cache will degrade to upstream reads",
				slog.String("addr", cfg.RedisAddr),
				slog.String("error", err.Error()))
		} else {
			slog.Info("connected to redis", slog.String("addr", cfg.RedisAddr))
		}
		pingCancel()
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		slog.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := session.NewStore(cfg.CookieSecrets)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loginLimiter := middleware.NewRateLimiter(ctx, 5, 10)
	defer loginLimiter.Stop()

	router := handler.NewRouter(handler.RouterDeps{
		API:          api,
		ProductCache: productCache,
		Store:        store,
		Renderer:     renderer,
		LoginLimiter: loginLimiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("storefront listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down storefront")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
	}

	cancel()

	slog.Info("storefront stopped gracefully")
}
