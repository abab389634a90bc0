// Command refract is a safe, programmable CST refactoring engine for a
// Python-flavored scripting language — the CLI entry point, grounded on
// original_source/bowler/main.py's click group (dump/do/run) and the
// teacher's demo/cmd/main.go's use of cobra + fatih/color for a colorized,
// subcommand-based tool.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
