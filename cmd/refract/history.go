package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/refract/internal/store"
)

// historyCmd lists previously recorded runs from the history database —
// not part of bowler's original CLI surface, but a natural place for the
// gorm/sqlite/libsql stack the teacher wired for its own MCP session
// bookkeeping (db/sqlite.go, models/models.go) to keep doing real work
// here: a queryable audit trail of past refract runs.
func historyCmd() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously recorded refactor runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Debug("opening history store", "dsn", dsn)
			st, err := store.Open(dsn, debugFlag)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns()
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Printf("%s  %-12s scanned=%d modified=%d matches=%d  %s\n",
					r.ID, r.Status, r.FilesScanned, r.FilesModified, r.TotalMatches, r.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "db", ".refract/history.db", "history database path or libsql URL")
	return cmd
}
