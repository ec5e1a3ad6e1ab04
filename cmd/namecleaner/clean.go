package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gyeh/namecleaner/internal/clean"
	"github.com/gyeh/namecleaner/internal/exitcode"
	"github.com/gyeh/namecleaner/internal/source"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean a column and write the file with a derived cleaned column",
	RunE:  runClean,
}

func init() {
	addColumnFlags(cleanCmd)
	f := cleanCmd.Flags()
	f.StringVar(&cfg.OutputPath, "out", "", "Output path, local or s3:// (default: cleaned_<input> next to the input)")
	f.StringVar(&cfg.OutputFormat, "format", "", "Output format: csv, xlsx or parquet (default: from output extension)")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	log := setupLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	summary, err := clean.Run(ctx, log, source.New(cfg.S3), &cfg)
	if err != nil {
		exitOnPipelineError(log, err, "clean failed")
	}

	fmt.Printf("Clean complete: %d records, %d modified, written to %s (%.1fs)\n",
		summary.RowsTotal, summary.RowsModified, summary.OutputPath, summary.DurationTotal.Seconds())
	return nil
}
