// Package tabscope provides a small toolkit for exploratory analysis of
// tabular data files.
//
// Usage:
//
//	import (
//	    "github.com/tabscope-org/tabscope/explore"
//	    "github.com/tabscope-org/tabscope/loader"
//	    "github.com/tabscope-org/tabscope/visual"
//	)
//
//	ds, err := loader.Load("sales.csv")
//	report := explore.Explore(ds)
//	report.Print()
//	art, err := visual.PlotCorrelationMatrix(ds, visual.WithOutputPath("corr.png"))
//
// The loader materializes a file (CSV, spreadsheet workbook, or JSON
// records) into a Dataset with per-column type inference. The explore
// package computes descriptive statistics and data-quality counts. The
// visual package computes pairwise Pearson correlation over numeric
// columns and renders it as a heat-map image.
//
// All operations are synchronous and read-only over the Dataset — the
// same Dataset can be handed to Explore and PlotCorrelationMatrix in
// any order. Nothing here calls an external service; all computation is
// local.
package tabscope
