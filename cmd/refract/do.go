package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/refract/internal/driver"
	"github.com/oxhq/refract/lang/pylite"
)

// doCmd executes one ad hoc query against the given paths, printing a diff
// by default (bowler's `result.diff(interactive=interactive)`). Pass
// --write to persist accepted changes. bowler's `do` also accepted a raw
// Python expression string to eval into a Query; that form has no safe Go
// analogue and is intentionally not ported (see DESIGN.md) — the
// --select-*/--rename-to/etc. flags are its replacement.
func doCmd() *cobra.Command {
	var (
		sel         selectorOpts
		act         actionOpts
		write       bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "do [paths...]",
		Short: "Execute a query against the given paths",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("refract: do requires at least one path (interactive REPL mode is not supported — see DESIGN.md)")
			}
			q, err := buildQuery(args, &sel, &act, write, interactive)
			if err != nil {
				return err
			}
			logger.Debug("running query", "paths", args, "write", write, "interactive", interactive)
			result, err := driver.Run(context.Background(), pylite.New(), q, driver.Options{})
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "review each hunk before applying")
	cmd.Flags().BoolVar(&write, "write", false, "persist accepted changes to disk")
	addSelectorFlags(cmd, &sel)
	addActionFlags(cmd, &act)
	return cmd
}

func printResult(result *driver.Result) {
	for _, f := range result.Files {
		if f.Error != "" {
			fmt.Printf("%s: error: %s\n", f.FilePath, f.Error)
			continue
		}
		if f.Diff != "" {
			fmt.Print(f.Diff)
		}
	}
	fmt.Printf("scanned %d file(s), matched %d, modified %d\n",
		result.FilesScanned, result.TotalMatches, result.FilesModified)
}
