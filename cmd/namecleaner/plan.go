package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gyeh/namecleaner/internal/clean"
	"github.com/gyeh/namecleaner/internal/exitcode"
	"github.com/gyeh/namecleaner/internal/source"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run: preview cleaned names and stats (no writes)",
	RunE:  runPlan,
}

func init() {
	addColumnFlags(planCmd)
	f := planCmd.Flags()
	f.IntVar(&cfg.PreviewRows, "preview", 0, "Number of preview rows (default 5)")
	f.StringVar(&cfg.OutputPath, "out", "", "Output path that clean would write")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := setupLogger()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	summary, err := clean.Plan(context.Background(), log, source.New(cfg.S3), &cfg)
	if err != nil {
		exitOnPipelineError(log, err, "plan failed")
	}

	fmt.Println("=== namecleaner plan ===")
	fmt.Printf("File:           %s\n", summary.FilePath)
	fmt.Printf("SHA-256:        %s\n", summary.FileSHA256)
	fmt.Printf("Column:         %s\n", summary.Column)
	fmt.Printf("Derived column: %s\n", summary.CleanedColumn)
	fmt.Printf("Total records:  %d\n", summary.RowsTotal)
	fmt.Printf("Modified:       %d\n", summary.RowsModified)
	fmt.Printf("Would write:    %s (%s)\n", summary.OutputPath, cfg.ResolveOutputFormat())
	fmt.Println()
	fmt.Println("Preview:")

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ROW\tORIGINAL\tCLEANED")
	for _, p := range summary.Preview {
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", p.RowNumber, p.RawText, p.Cleaned)
	}
	return tw.Flush()
}
