// Package logger builds log/slog loggers and provides attribute helpers
// shared by the rest of the module.
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "rowctl"),
//	    logger.WithContextExtractors(session.LogExtractor()),
//	)
//	log.InfoContext(ctx, "query executed", logger.Query(sql), logger.RowCount(n))
//
// Context extractors run on every record, so values such as the session ID
// are read from the context of the call rather than captured at creation.
package logger
