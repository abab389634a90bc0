package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	debugFlag   bool
	quietFlag   bool
	versionFlag bool

	logger *slog.Logger
)

// newRootCmd builds the refract command tree — bowler/main.py's click
// group translated to cobra, with --debug/--quiet toggling log verbosity
// and -V/--version short-circuiting like the original's eager version
// option.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "refract",
		Short: "Safe, programmable CST refactoring",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("loading .env: %w", err)
			}
			level := slog.LevelWarn
			if debugFlag {
				level = slog.LevelDebug
			}
			if quietFlag {
				level = slog.LevelError
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				fmt.Printf("refract %s\n", version)
				return nil
			}
			return doCmd().RunE(cmd, args)
		},
	}

	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "verbose logging")
	root.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "errors-only logging")
	root.Flags().BoolVarP(&versionFlag, "version", "V", false, "print version and exit")

	root.AddCommand(dumpCmd())
	root.AddCommand(doCmd())
	root.AddCommand(runCmd())
	root.AddCommand(historyCmd())
	return root
}
