package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exec SQL [ARG...]",
		Short: "Run a statement that returns no rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.Exec(cmd.Context(), args[0], bindArgs(args[1:])...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "%d rows affected\n", n)
			return err
		},
	}
}
