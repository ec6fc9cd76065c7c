package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/tabscope-org/tabscope/dataset"
	"github.com/tabscope-org/tabscope/explore"
	"github.com/tabscope-org/tabscope/loader"
	"github.com/tabscope-org/tabscope/visual"
)

// ============================================================================
// TABSCOPE CLI — Explore tabular data files
// ============================================================================

const version = "0.1.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	filePath := flag.String("file", "", "Path to data file (required)")
	sheet := flag.String("sheet", "", "Sheet name for workbook formats (default: first sheet)")
	columns := flag.String("columns", "", "Comma-separated column subset")
	maxRows := flag.Int("max-rows", 0, "Cap the number of data rows read (0 = all)")
	corrOut := flag.String("corr", "", "Save a correlation heat-map to this image path")
	distOut := flag.String("dist", "", "Save numeric distribution histograms to this image path")
	summaryOut := flag.String("summary", "", "Save a combined text summary report to this path")
	annotate := flag.Bool("annotate", false, "Print coefficient values in heat-map cells")
	size := flag.String("size", "", "Figure size in inches as WxH (e.g. 10x8)")
	paletteName := flag.String("palette", "blue-red", "Heat-map color scale: blue-red, kindlmann, black-body, heat")
	listwise := flag.Bool("listwise", false, "Use listwise-complete rows for correlation (default: pairwise)")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Tabscope — explore tabular data files

Usage:
  tabscope --file data.csv
  tabscope --file sales.xlsx --sheet "Q3" --corr corr.png --annotate
  tabscope --file events.json --max-rows 10000 --dist dist.png
  tabscope --file data.csv --summary report.txt

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Formats (by extension): %s

Examples:
  # Print the exploration report
  tabscope --file jira.csv

  # Heat-map with annotated coefficients, custom size
  tabscope --file sales.csv --corr corr.png --annotate --size 10x8

  # Everything at once
  tabscope --file data.csv --corr corr.png --dist dist.png --summary summary.txt
`, strings.Join(loader.Extensions(), ", "))
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("tabscope %s\n", version)
		os.Exit(0)
	}

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		flag.Usage()
		os.Exit(1)
	}

	// ── Load ──────────────────────────────────────────────────────────────
	opts := loader.Options{
		Sheet:   *sheet,
		MaxRows: *maxRows,
	}
	if *columns != "" {
		opts.Columns = strings.Split(*columns, ",")
	}

	ds, err := loader.Load(*filePath, opts)
	if err != nil {
		fatalf("Failed to load %s: %v", *filePath, err)
	}
	log.Printf("Loaded %s: %d rows, %d columns", *filePath, ds.NumRows(), ds.NumCols())

	// ── Explore ───────────────────────────────────────────────────────────
	report := explore.Explore(ds)
	report.Print()

	// ── Plot options ──────────────────────────────────────────────────────
	plotOpts := []visual.Option{visual.WithPalette(*paletteName)}
	if *annotate {
		plotOpts = append(plotOpts, visual.WithAnnotations())
	}
	if *listwise {
		plotOpts = append(plotOpts, visual.WithMissingPolicy(visual.ListwiseComplete))
	}
	if *size != "" {
		w, h, err := parseSize(*size)
		if err != nil {
			fatalf("Bad --size: %v", err)
		}
		plotOpts = append(plotOpts, visual.WithSize(w, h))
	}

	// ── Correlation heat-map ──────────────────────────────────────────────
	if *corrOut != "" {
		art, err := visual.PlotCorrelationMatrix(ds, append(plotOpts, visual.WithOutputPath(*corrOut))...)
		if err != nil {
			if errors.Is(err, visual.ErrInsufficientData) {
				fatalf("Cannot plot correlation matrix: %v", err)
			}
			fatalf("Failed to render heat-map: %v", err)
		}
		log.Printf("Correlation heat-map written to %s", art.Path)
	}

	// ── Distribution histograms ───────────────────────────────────────────
	if *distOut != "" {
		art, err := visual.PlotDistributions(ds, append(plotOpts, visual.WithOutputPath(*distOut))...)
		if err != nil {
			fatalf("Failed to render distributions: %v", err)
		}
		log.Printf("Distribution histograms written to %s", art.Path)
	}

	// ── Combined summary report ───────────────────────────────────────────
	if *summaryOut != "" {
		if err := writeSummary(*summaryOut, report, ds, plotOpts); err != nil {
			fatalf("Failed to write summary: %v", err)
		}
		log.Printf("Summary report written to %s", *summaryOut)
	}
}

// writeSummary writes the text report plus the correlation matrix (when
// computable) to a single file.
func writeSummary(path string, report *explore.Report, ds *dataset.Dataset, plotOpts []visual.Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "=== Data Summary Report ===")
	fmt.Fprintln(f)
	if err := explore.WriteText(f, report); err != nil {
		return err
	}

	m, err := visual.Correlate(ds, plotOpts...)
	if errors.Is(err, visual.ErrInsufficientData) {
		return nil // no correlation section for <2 numeric columns
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(f)
	fmt.Fprintln(f, "=== Correlation Matrix ===")
	return m.WriteText(f)
}

// parseSize parses "10x8" into vg lengths in inches.
func parseSize(s string) (vg.Length, vg.Length, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad width %q", parts[0])
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad height %q", parts[1])
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size must be positive, got %q", s)
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
