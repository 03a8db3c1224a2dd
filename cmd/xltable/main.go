// Package main provides the command line entry point for xltable.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xltable-go/pkg/xltable"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "xltable",
		Short: "Extract tables from spreadsheets and write tables back",
		Long: `xltable finds a table inside an Excel sheet (below an anchor cell,
above a footer), keeps the selected columns and renders it as CSV, JSON or
Markdown. It can also write CSV data into a sheet of an .xlsx document.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return xltable.CheckEnvironment(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(
		newExtractCmd(),
		newExportCmd(),
		newInspectCmd(),
		newDescribeCmd(),
		newFormatsCmd(),
	)
	return rootCmd
}

// exitCode maps usage mistakes to 2 and every other failure to 1.
func exitCode(err error) int {
	if errors.Is(err, xltable.ErrUsage) {
		return 2
	}
	return 1
}
