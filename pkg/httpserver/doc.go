// Package httpserver runs an http.Handler with graceful shutdown.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns after ctx is cancelled or SIGINT/SIGTERM arrives, once
// in-flight requests have finished or ShutdownTimeout has passed.
//
// HealthHandler exposes dependency probes (database.Healthcheck,
// redis.Healthcheck) as a JSON endpoint and RequestLogger logs every
// request through slog.
package httpserver
