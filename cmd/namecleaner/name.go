package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/namecleaner/internal/exitcode"
	"github.com/gyeh/namecleaner/internal/normalize"
)

var nameCmd = &cobra.Command{
	Use:   "name [names...]",
	Short: "Normalize company names given as arguments, or one per line on stdin",
	RunE:  runName,
}

func init() {
	rootCmd.AddCommand(nameCmd)
}

func runName(cmd *cobra.Command, args []string) error {
	log := setupLogger()

	if len(args) > 0 {
		for _, a := range args {
			fmt.Println(normalize.CompanyName(a))
		}
		return nil
	}
	if err := cleanLines(os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("read names failed")
		os.Exit(exitcode.CleanError)
	}
	return nil
}

// cleanLines writes the cleaned form of each input line.
func cleanLines(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	bw := bufio.NewWriter(w)
	for sc.Scan() {
		if _, err := fmt.Fprintln(bw, normalize.CompanyName(sc.Text())); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return bw.Flush()
}
