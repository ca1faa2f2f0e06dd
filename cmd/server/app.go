package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/webkit/pkg/config"
	"github.com/dmitrymomot/webkit/pkg/cookie"
	"github.com/dmitrymomot/webkit/pkg/cursor"
	"github.com/dmitrymomot/webkit/pkg/database"
	"github.com/dmitrymomot/webkit/pkg/httpserver"
	"github.com/dmitrymomot/webkit/pkg/logger"
	"github.com/dmitrymomot/webkit/pkg/redis"
	"github.com/dmitrymomot/webkit/pkg/session"
)

const (
	storeMemory = "memory"
	storeRedis  = "redis"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	LogLevel     string `env:"LOG_LEVEL"`
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"` // memory or redis

	HTTP    httpserver.Config
	DB      database.Config
	Redis   redis.Config
	Cookie  cookie.Config
	Session session.Config
}

func newLogger(cfg appConfig) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, "webkit-server"),
		logger.WithContextExtractors(session.LogExtractor()),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := newLogger(cfg)

	db, err := database.Open(ctx, cfg.DB,
		database.WithLogger(log),
		database.WithCursorOptions(cursor.WithStrictColumns()),
	)
	if err != nil {
		return err
	}
	defer db.Close()

	checks := map[string]httpserver.Check{}
	if p, ok := db.Querier().(database.Pinger); ok {
		checks["database"] = database.Healthcheck(p)
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	sessionOpts := []session.Option{
		session.WithTransport(sessionTransport(cookies, cfg.Session)),
		session.WithLogger(log),
	}
	switch cfg.SessionStore {
	case storeMemory:
	case storeRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		sessionOpts = append(sessionOpts, session.WithStore(
			session.NewRedisStore(client, session.WithKeyPrefix(cfg.Redis.KeyPrefix+"session:")),
		))
		checks["redis"] = redis.Healthcheck(client)
	default:
		return fmt.Errorf("unknown SESSION_STORE %q, want %s or %s", cfg.SessionStore, storeMemory, storeRedis)
	}

	sessions, err := session.NewFromConfig(cfg.Session, sessionOpts...)
	if err != nil {
		return err
	}
	defer sessions.Close()

	h := &handlers{db: db, cookies: cookies, sessions: sessions, log: log}
	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(h, checks))
}

// sessionTransport accepts a bearer token for API clients and falls back to
// the encrypted session cookie for browsers.
func sessionTransport(cookies *cookie.Manager, cfg session.Config) session.Transport {
	var opts []cookie.Option
	if cfg.SecureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}
	return session.NewCompositeTransport(
		session.NewHeaderTransport("Authorization"),
		session.NewCookieTransport(cookies, cfg.CookieName, opts...),
	)
}
