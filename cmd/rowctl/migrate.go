package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/webkit/pkg/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending goose migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.dbConfig()
			if err != nil {
				return err
			}
			if dir != "" {
				cfg.MigrationsPath = dir
			}

			pool, err := database.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			return database.Migrate(cmd.Context(), pool, cfg, a.log)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "migrations directory, overrides DB_MIGRATIONS_PATH")
	return cmd
}
