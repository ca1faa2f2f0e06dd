// Package database runs SQL against PostgreSQL through pgx/v5 and returns
// result sets as cursors from package cursor.
//
// Config is populated from DB_* environment variables (see the struct tags).
// Either DB_URL or the split DB_HOST/DB_PORT/DB_DATABASE/DB_USERNAME/
// DB_PASSWORD form names the server; a missing database name is reported as
// ErrNoDatabaseSelected.
//
// Connect opens a *pgxpool.Pool with retries, Migrate applies goose
// migrations and Healthcheck builds a probe for health endpoints.
//
// # Usage
//
//	var cfg database.Config
//	config.MustLoad(&cfg)
//
//	db, err := database.Open(ctx, cfg, database.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	err = db.WithCursor(ctx, func(c *cursor.Cursor) error {
//	    names, err := c.ExtractColumn("name")
//	    ...
//	}, "SELECT id, name FROM users WHERE active = $1", true)
//
// Query fully buffers the result set before returning, so Count and Seek
// behave like a stored result. Statements without a result set (INSERT,
// UPDATE, DDL) yield ErrNoResultSet from Query; run them with Exec.
package database
