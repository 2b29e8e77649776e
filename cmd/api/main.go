// Package main is the entrypoint for the Libris API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/libris/libris/internal/auth"
	"github.com/libris/libris/internal/cache"
	"github.com/libris/libris/internal/config"
	"github.com/libris/libris/internal/handler"
	"github.com/libris/libris/internal/metrics"
	"github.com/libris/libris/internal/middleware"
	"github.com/libris/libris/internal/repository"
	"github.com/libris/libris/internal/server"
	"github.com/libris/libris/internal/service"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize token manager
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenExpiry())
	if err != nil {
		logger.Error("failed to initialize token manager", "error", err)
		os.Exit(1)
	}

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	authService := service.NewAuthService(repo, tokens, metricsRecorder)
	bookService := service.NewBookService(repo, cacheClient, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(authService, logger)
	bookHandler := handler.NewBookHandler(bookService, logger)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)

	// Setup router
	r := setupRouter(h, healthHandler, authHandler, bookHandler, metricsHandler, tokens, metricsRecorder, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	bookHandler *handler.BookHandler,
	metricsHandler *handler.MetricsHandler,
	tokens *auth.TokenManager,
	recorder metrics.Recorder,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.DefaultSecurityConfig()))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root info endpoint
	r.Get("/", h.Hello)

	// Auth middleware configuration
	authCfg := middleware.AuthConfig{
		Logger:   logger,
		Verifier: tokens,
		Metrics:  recorder,
	}

	// Metrics endpoint, bearer token required
	r.With(middleware.Auth(authCfg)).Get("/admin/metrics", metricsHandler.Metrics)

	// Rate limit middleware configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:      logger,
		Cache:       cacheClient,
		AuthEnabled: cfg.RateLimitAuthEnabled,
		AuthRPM:     cfg.RateLimitAuthRPM,
		AuthBurst:   cfg.RateLimitAuthBurst,
	}

	// Registration and login, rate limited per client IP
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitAuth(rateLimitCfg))
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Book catalog, reads are public
	r.Route("/books", func(r chi.Router) {
		r.Get("/", bookHandler.List)
		r.Get("/{id}", bookHandler.Get)

		// Mutations require a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Post("/", bookHandler.Create)
			r.Put("/{id}", bookHandler.Update)
			r.Delete("/{id}", bookHandler.Delete)
		})
	})

	// Token-gated demo endpoint
	r.With(middleware.Auth(authCfg)).Get("/protected-endpoint", authHandler.Protected)

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
