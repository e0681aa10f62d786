package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vibedezine_server/api"
	"vibedezine_server/config"
	"vibedezine_server/internal/ai"
	handlers "vibedezine_server/internal/api"
	"vibedezine_server/internal/export"
	"vibedezine_server/internal/interview"
	"vibedezine_server/internal/llm"
	"vibedezine_server/internal/store"
	"vibedezine_server/internal/webpage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Load .env file ---
	// Must happen before viper reads the environment.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("error loading .env file", "err", err)
		} else {
			slog.Info(".env file not found, relying on system environment variables")
		}
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Dependency Initialization ---
	completer, err := llm.New(ctx, llm.Options{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.APIKey(),
		Model:    cfg.Model(),
		BaseURL:  cfg.LLMBaseURL,
		Referer:  cfg.SiteURL,
		Title:    cfg.SiteTitle,
	}, logger)
	if err != nil {
		return err
	}

	fetcher := webpage.NewFetcher(
		webpage.WithTimeout(cfg.FetchTimeout),
		webpage.WithUserAgent("Mozilla/5.0 (compatible; "+cfg.SiteTitle+"/1.0; +"+cfg.SiteURL+")"),
	)
	reader := webpage.NewReader(fetcher, cfg.MaxContentChars, logger)
	generator := ai.NewGenerator(completer, reader, logger)

	sessions, err := openSessionStore(cfg)
	if err != nil {
		return err
	}
	defer sessions.Close()
	interviews := interview.NewManager(generator, sessions, interview.WithLogger(logger))

	exporter, err := export.NewExporter(export.WithSite(cfg.SiteURL, cfg.SiteTitle))
	if err != nil {
		return err
	}
	var publisher *export.Publisher
	if cfg.PublishDir != "" {
		publisher = export.NewPublisher(cfg.PublishDir, cfg.PublishBaseURL, logger)
		logger.Info("publishing enabled", "dir", cfg.PublishDir, "base_url", cfg.PublishBaseURL)
	}

	apiHandler := handlers.NewAPIHandler(generator, interviews, exporter, publisher, logger)

	// --- HTTP Server ---
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	routeOpts := api.RouteOptions{
		AllowedOrigins: cfg.Origins(),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}
	if publisher != nil {
		routeOpts.SitesPath = publisher.BaseURL()
		routeOpts.SitesDir = publisher.Dir()
	}
	api.RegisterRoutes(router, apiHandler, routeOpts)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Generation calls can take a while; keep the write window wide.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting API server", "addr", cfg.ServerAddress, "provider", cfg.LLMProvider, "store", cfg.SessionStore)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// --- Graceful Shutdown ---
	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server forced shutdown", "err", err)
		return err
	}

	logger.Info("API server gracefully stopped")
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Production() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func openSessionStore(cfg config.Config) (store.SessionRepository, error) {
	if cfg.SessionStore == "sqlite" {
		s, err := store.NewSQLite(cfg.SessionDBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("using sqlite session store", "path", cfg.SessionDBPath)
		return s, nil
	}
	return store.NewMemory(), nil
}
