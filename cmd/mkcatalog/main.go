// mkcatalog converts an insulin catalog between formats. Rows are written
// unchanged, including rows the calculator would drop, so the output imports
// exactly like the input.
// Usage: go run ./cmd/mkcatalog --in Insulin_Rx.xlsx --out testdata/insulin_rx.parquet
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/michaelmindrum/insulin-prescription-app/internal/catalog"
	"github.com/michaelmindrum/insulin-prescription-app/internal/catalogsrc"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

func main() {
	in := flag.String("in", "", "input catalog (.xlsx, .csv or .parquet; default: embedded catalog)")
	out := flag.String("out", "insulin_rx.parquet", "output catalog (.xlsx or .parquet)")
	checkOnly := flag.Bool("check", false, "only print stats, don't write")
	flag.Parse()

	var (
		rows []model.CatalogRow
		err  error
	)
	source := *in
	if source == "" {
		source = catalogsrc.DefaultName
		rows, err = catalogsrc.Default()
	} else {
		rows, err = catalogsrc.Load(source)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", source, err)
		os.Exit(1)
	}

	cat, stats := catalog.Build(rows)
	fmt.Printf("Read %d rows from %s: %d usable, %d dropped, %d overwritten\n",
		stats.RowsRead, source, stats.RowsUsed, stats.RowsDropped, stats.Overwrites)
	for _, class := range model.AllClasses {
		fmt.Printf("  %-22s %d insulins\n", class.Label(), len(cat.Names(class)))
	}
	if unclassified := cat.Names(model.ClassUnclassified); len(unclassified) > 0 {
		fmt.Printf("  %-22s %v\n", "No dosing policy", unclassified)
	}

	if *checkOnly {
		return
	}

	format, err := catalogsrc.FormatOf(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	switch format {
	case catalogsrc.FormatParquet:
		err = catalogsrc.WriteParquet(*out, rows)
	case catalogsrc.FormatXLSX:
		err = catalogsrc.WriteXLSX(*out, rows)
	default:
		err = fmt.Errorf("cannot write %s output", format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(rows), *out)
}
