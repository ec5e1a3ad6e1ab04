package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gyeh/namecleaner/internal/exitcode"
	"github.com/gyeh/namecleaner/internal/server"
)

var allowedOrigins []string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload/clean/download HTTP app",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cfg.Addr, "addr", "", "Listen address (default \":8080\")")
	f.StringVar(&cfg.Prefix, "prefix", "", "Prefix for the derived column (default \"cleaned_\")")
	f.IntVar(&cfg.Workers, "workers", 0, "Goroutines used per clean request (default: GOMAXPROCS)")
	f.IntVar(&cfg.PreviewRows, "preview", 0, "Preview rows returned by /api/clean (default 5)")
	f.Int64Var(&cfg.MaxUploadBytes, "max-upload-bytes", 0, "Upload size limit in bytes (default 32 MiB)")
	f.StringSliceVar(&allowedOrigins, "cors-origin", nil, "Allowed CORS origins (default *)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := setupLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(log, server.Options{
		Prefix:         cfg.Prefix,
		Workers:        cfg.Workers,
		PreviewRows:    cfg.PreviewRows,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AllowedOrigins: allowedOrigins,
	})
	if err := srv.Run(ctx, cfg.Addr); err != nil {
		log.Error().Err(err).Msg("http server failed")
		os.Exit(exitcode.UsageError)
	}
	return nil
}
