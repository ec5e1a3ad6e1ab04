package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/namecleaner/internal/clean"
	"github.com/gyeh/namecleaner/internal/config"
	"github.com/gyeh/namecleaner/internal/exitcode"
	"github.com/gyeh/namecleaner/internal/logging"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "namecleaner",
	Short: "Company name normalizer for CSV, XLSX and Parquet files",
	Long: "Strips trailing legal suffixes (Inc, LLC, Corp, Ltd, ...) from a column of company names, " +
		"writes the cleaned column next to the original, and optionally records runs in Postgres.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := cfg.LoadFromFile(configPath); err != nil {
				return err
			}
		}
		cfg.SetDefaults()
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to YAML config file")
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("NAMECLEANER_DB_URL"), "Postgres connection string (or set NAMECLEANER_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&cfg.S3.Region, "s3-region", "", "AWS region for s3:// paths")
	pf.StringVar(&cfg.S3.Profile, "s3-profile", "", "AWS shared config profile for s3:// paths")
	pf.StringVar(&cfg.S3.Endpoint, "s3-endpoint", "", "Custom S3 endpoint (e.g. MinIO)")
	pf.BoolVar(&cfg.S3.PathStyle, "s3-path-style", false, "Use path-style S3 addressing")
}

// addColumnFlags registers the flags shared by commands that clean a file column.
func addColumnFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Input CSV, XLSX or Parquet file, local or s3:// (required)")
	f.StringVar(&cfg.Column, "column", "", "Column holding company names (required unless set in --config)")
	f.StringVar(&cfg.Prefix, "prefix", "", "Prefix for the derived column (default \"cleaned_\")")
	f.StringVar(&cfg.InputFormat, "input-format", "", "Input format: csv, xlsx or parquet (default: from extension)")
	f.IntVar(&cfg.Workers, "workers", 0, "Goroutines used to clean the column (default: GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("file")
}

func setupLogger() zerolog.Logger {
	return logging.Setup(cfg.LogFormat, cfg.LogLevel)
}

// exitCodeFor maps a pipeline failure to a process exit code.
func exitCodeFor(err error) int {
	var pe *clean.PipelineError
	if !errors.As(err, &pe) {
		return exitcode.CleanError
	}
	switch pe.Phase {
	case clean.PhaseRead, clean.PhaseValidate:
		return exitcode.ValidationError
	case clean.PhaseWrite:
		return exitcode.WriteError
	case clean.PhaseLoad:
		return exitcode.LoadError
	default:
		return exitcode.CleanError
	}
}

// exitOnPipelineError logs err with its phase and exits.
func exitOnPipelineError(log zerolog.Logger, err error, msg string) {
	evt := log.Error()
	var pe *clean.PipelineError
	if errors.As(err, &pe) {
		evt = evt.Err(pe.Err).Str("phase", pe.Phase)
	} else {
		evt = evt.Err(err)
	}
	evt.Msg(msg)
	os.Exit(exitCodeFor(err))
}
