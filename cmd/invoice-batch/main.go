package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/freightdocs/invoice-extractor/internal/batch"
	"github.com/freightdocs/invoice-extractor/internal/export"
	"github.com/freightdocs/invoice-extractor/internal/extract"
	"github.com/freightdocs/invoice-extractor/internal/ident"
	"github.com/freightdocs/invoice-extractor/internal/pdftext"
	"github.com/freightdocs/invoice-extractor/internal/store"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir      = flag.String("dir", "", "directory with invoice PDFs (required)")
		out      = flag.String("out", "", "output XLSX path (defaults to <dir>/../Invoice_Summary.xlsx)")
		template = flag.String("template", "template-a", "invoice template profile (template-a|template-b)")
		idPolicy = flag.String("id-policy", "", "identifier policy override (dn-prefix|numeric, defaults to the template's)")
		dbPath   = flag.String("db", "", "optional SQLite path to persist the batch run")
	)
	flag.Parse()
	_ = godotenv.Load()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "Invoice_Summary.xlsx")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	profile, err := extract.ProfileByName(*template)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if *idPolicy != "" {
		policy, err := ident.ParsePolicy(*idPolicy)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		profile.IdentPolicy = policy
	}

	sources, err := batch.LoadDirectory(*dir)
	if err != nil {
		printError("Error: failed to read %s: %v\n", *dir, err)
		os.Exit(1)
	}
	if len(sources) == 0 {
		printError("Error: no PDF files found under %s\n", *dir)
		os.Exit(1)
	}

	ctx := context.Background()
	parser := extract.NewParser(logger, profile)
	driver := batch.NewDriver(logger, pdftext.NewReader(), parser)
	res := driver.Run(ctx, sources)

	if *dbPath != "" {
		st, err := store.Open(ctx, *dbPath, logger)
		if err != nil {
			printError("Error: failed to open batch store: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()
		if err := st.SaveBatch(ctx, res); err != nil {
			printError("Error: failed to persist batch: %v\n", err)
			os.Exit(1)
		}
	}

	// A run with zero successes still writes a valid header-only workbook.
	data, err := export.NewService(logger).WriteXLSX(res.Records)
	if err != nil {
		printError("Error: failed to build workbook: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		printError("Error: failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("Processed %d files: %d succeeded, %d failed\n",
		res.Stats.Total, res.Stats.Succeeded, res.Stats.Failed)
	for _, f := range res.Failures {
		fmt.Printf("  failed: %s (%s)\n", f.SourceID, f.Status)
	}
	fmt.Printf("Wrote %s\n", *out)
}
