package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/webkit/pkg/config"
	"github.com/dmitrymomot/webkit/pkg/database"
	"github.com/dmitrymomot/webkit/pkg/logger"
)

type app struct {
	out    io.Writer
	errOut io.Writer
	log    *slog.Logger

	dsn      string
	envFile  string
	logLevel string
	format   string

	// open is replaced in tests.
	open func(ctx context.Context) (*database.Database, error)
}

func newApp(out, errOut io.Writer) *app {
	a := &app{out: out, errOut: errOut}
	a.open = a.openDatabase
	return a
}

func (a *app) dbConfig() (database.Config, error) {
	var cfg database.Config
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	if a.dsn != "" {
		cfg.URL = a.dsn
	}
	return cfg, nil
}

func (a *app) openDatabase(ctx context.Context) (*database.Database, error) {
	cfg, err := a.dbConfig()
	if err != nil {
		return nil, err
	}
	return database.Open(ctx, cfg, database.WithLogger(a.log))
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "rowctl",
		Short: "Query a PostgreSQL database from the command line",
		Long: `rowctl runs SQL statements and prints result sets as JSON or YAML.

Connection settings come from DB_* environment variables (a .env file in
the working directory is loaded first) or from --dsn.

Examples:
  rowctl query "SELECT id, email FROM users" --limit 10
  rowctl query "SELECT * FROM users WHERE id = $1" 42 --format yaml
  rowctl query "SELECT email FROM users" --column email
  rowctl query "SELECT * FROM orders" --count
  rowctl exec "DELETE FROM sessions WHERE expires_at < now()"
  rowctl migrate --dir ./migrations`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch a.format {
			case formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown output format %q, want %s or %s", a.format, formatJSON, formatYAML)
			}
			if a.envFile != "" {
				if err := config.LoadFiles(a.envFile); err != nil {
					return err
				}
			}
			a.log = logger.New(
				logger.WithFormat(logger.FormatText),
				logger.WithOutput(a.errOut),
				logger.WithLevel(logger.ParseLevel(a.logLevel)),
				logger.WithAttr(logger.Component("rowctl")),
			)
			return nil
		},
	}

	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.dsn, "dsn", "", "connection URL, overrides DB_URL")
	flags.StringVar(&a.envFile, "env-file", "", "additional env file to load")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVarP(&a.format, "format", "f", formatJSON, "output format: json or yaml")

	root.AddCommand(newQueryCmd(a), newExecCmd(a), newMigrateCmd(a))
	return root
}
