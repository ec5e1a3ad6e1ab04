// mkfixture writes a sample company-name table for trying namecleaner by hand.
// The format follows the output extension (.csv, .xlsx or .parquet).
// Usage: go run ./cmd/mkfixture --out testdata/companies.csv --rows 200
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/gyeh/namecleaner/internal/normalize"
	"github.com/gyeh/namecleaner/internal/table"
)

var (
	stems = []string{
		"Acme", "Globex", "Initech", "Umbrella", "Stark Industries", "Wayne Enterprises",
		"Hooli", "Vandelay Industries", "Soylent", "Tyrell", "Cyberdyne Systems", "Wonka",
		"Acme Repair", "Blue Sky Partners", "Nakatomi Trading", "Müller & Söhne",
	}
	suffixes = []string{
		"", " Inc", " Inc.", ", Inc.", " Co", " Co.", " Corp", " Corp.", " LLC", " L.L.C.",
		" Ltd", " Ltd.", " Limited", " PLC", " L.P.", " P.C.", " Company", " Corporation",
		" Incorporated", " Corp LLC",
	}
)

func main() {
	out := flag.String("out", "testdata/companies.csv", "output file")
	rows := flag.Int("rows", 200, "rows to write")
	seed := flag.Uint64("seed", 1, "random seed")
	missing := flag.Float64("missing", 0.05, "fraction of rows with a missing name")
	check := flag.Bool("check", false, "only print how many rows cleaning would change")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed))
	tbl := table.New("id", "company", "city")
	cities := []string{"New York", "Chicago", "Austin", "Seattle", "Denver"}
	for i := 1; i <= *rows; i++ {
		var name any
		if rng.Float64() >= *missing {
			name = pad(rng, stems[rng.IntN(len(stems))]+suffixes[rng.IntN(len(suffixes))])
		}
		tbl.AddRow(int64(i), name, cities[rng.IntN(len(cities))])
	}

	if *check {
		names, _ := tbl.Column("company")
		var modified int
		for _, n := range names {
			if normalize.Modified(n, normalize.CompanyName(n)) {
				modified++
			}
		}
		fmt.Printf("Total: %d, Modified: %d\n", len(names), modified)
		return
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	if err := table.Write(f, tbl, table.FormatFromPath(*out)); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "write fixture: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d rows to %s\n", *rows, *out)
}

// pad sometimes adds stray whitespace so the fixture exercises collapsing.
func pad(rng *rand.Rand, s string) string {
	switch rng.IntN(6) {
	case 0:
		return "  " + s + "  "
	case 1:
		return strings.Replace(s, " ", "   ", 1)
	default:
		return s
	}
}
