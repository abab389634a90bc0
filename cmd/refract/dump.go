package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/refract/internal/pattern"
	"github.com/oxhq/refract/lang/pylite"
)

// dumpCmd prints the parsed CST of each given file — bowler's `dump`
// command, Query(paths).select_root().dump(selector_pattern). With
// --selector-pattern it prints the fixed pattern "file_input< any* >" once
// and reads no file; no pattern is derived from a file's own tree.
func dumpCmd() *cobra.Command {
	var selectorPattern bool

	cmd := &cobra.Command{
		Use:   "dump [paths...]",
		Short: "Dump the CST representation of each file",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if selectorPattern {
				fmt.Println(pattern.MustCompile("file_input< any* >").String())
				return nil
			}
			lang := pylite.New()
			for _, path := range args {
				content, err := readFile(path)
				if err != nil {
					return err
				}
				tree, err := lang.Parse(content)
				if err != nil {
					return fmt.Errorf("refract: parsing %s: %w", path, err)
				}
				fmt.Printf("--- %s ---\n", path)
				dumpNode(tree.Root, 0)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&selectorPattern, "selector-pattern", false, "print the generated selector pattern instead of the tree")
	return cmd
}
