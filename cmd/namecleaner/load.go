package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gyeh/namecleaner/internal/clean"
	"github.com/gyeh/namecleaner/internal/db"
	"github.com/gyeh/namecleaner/internal/exitcode"
	"github.com/gyeh/namecleaner/internal/source"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Clean a column and record the run in Postgres",
	RunE:  runLoad,
}

func init() {
	addColumnFlags(loadCmd)
	loadCmd.Flags().BoolVar(&cfg.Force, "force", false, "Reload even if this file and column were already loaded")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := setupLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}

	summary, err := clean.Load(ctx, pool, log, source.New(cfg.S3), &cfg)
	pool.Close()
	if err != nil {
		exitOnPipelineError(log, err, "load failed")
	}

	if summary.AlreadyLoaded {
		fmt.Printf("Already loaded as run %s (%d rows); use --force to reload\n", summary.RunID, summary.RowsLoaded)
		return nil
	}
	fmt.Printf("Load complete: run %s, %d rows loaded, %d modified (%.1fs)\n",
		summary.RunID, summary.RowsLoaded, summary.RowsModified, summary.DurationTotal.Seconds())
	return nil
}
