package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/webkit/pkg/cursor"
	"github.com/dmitrymomot/webkit/pkg/database"
)

type queryOptions struct {
	limit  int
	offset int
	column string
	count  bool
	format string
}

func newQueryCmd(a *app) *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "query SQL [ARG...]",
		Short: "Run a query and print its rows",
		Long: `Run a query and print its rows in column order.

Extra arguments are bound to $1, $2, ... placeholders.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.limit < 0 || opts.offset < 0 {
				return fmt.Errorf("--limit and --offset must not be negative")
			}
			opts.format = a.format

			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			return runQuery(cmd.Context(), a.out, db, opts, args[0], bindArgs(args[1:])...)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 0, "maximum rows to print, 0 for all")
	cmd.Flags().IntVarP(&opts.offset, "offset", "o", 0, "rows to skip")
	cmd.Flags().StringVarP(&opts.column, "column", "c", "", "print only this column's values")
	cmd.Flags().BoolVar(&opts.count, "count", false, "print the number of rows only")
	return cmd
}

func runQuery(ctx context.Context, out io.Writer, db *database.Database, opts queryOptions, sql string, args ...any) error {
	return db.WithCursor(ctx, func(c *cursor.Cursor) error {
		if opts.count {
			_, err := fmt.Fprintln(out, c.Count())
			return err
		}

		if opts.offset > 0 {
			ok, err := c.Seek(opts.offset)
			if err != nil {
				return err
			}
			if !ok {
				return render(out, opts.format, []any{})
			}
		}

		if opts.column != "" {
			values, err := c.ExtractColumn(opts.column)
			if err != nil {
				return err
			}
			if opts.limit > 0 && len(values) > opts.limit {
				values = values[:opts.limit]
			}
			return render(out, opts.format, values)
		}

		records := make([]*cursor.Record, 0)
		for opts.limit == 0 || len(records) < opts.limit {
			rec, err := c.FetchRecord()
			if err != nil {
				return err
			}
			if rec == nil {
				break
			}
			records = append(records, rec)
		}
		return render(out, opts.format, records)
	}, sql, args...)
}

func bindArgs(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
