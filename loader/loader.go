// Package loader resolves file paths to in-memory Datasets, dispatching
// on the path's extension.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tabscope-org/tabscope/dataset"
)

// ============================================================================
// LOADER — Format-aware ingestion
// ============================================================================
// Format selection is keyed by the path's extension, case-insensitive.
// Each format handler produces a header row plus string data rows; the
// dataset package then runs type inference over them.
// ============================================================================

// Sentinel errors. Callers match with errors.Is.
var (
	// ErrNotFound means the path does not resolve to a readable resource.
	ErrNotFound = errors.New("resource not found")
	// ErrUnsupportedFormat means the extension has no registered handler.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrParse means the content is structurally malformed.
	ErrParse = errors.New("parse error")
)

// Options controls loading. All fields are optional and independently
// toggleable.
type Options struct {
	// Sheet selects the sheet/table for multi-table formats (workbooks).
	// Empty selects the first sheet.
	Sheet string
	// Columns restricts the Dataset to the named columns, in the order
	// they appear in the source. Empty keeps all columns.
	Columns []string
	// Types forces per-column types, bypassing inference.
	Types map[string]dataset.Type
	// MaxRows caps the number of data rows read. Zero means all.
	MaxRows int
	// CategoricalThreshold overrides the distinct-ratio threshold for
	// categorical inference. Zero means the package default.
	CategoricalThreshold float64
}

// handler reads a source file into a header row and data rows.
type handler func(path string, opt Options) ([]string, [][]string, error)

// handlers maps lowercase extensions (without dot) to format readers.
var handlers = map[string]handler{
	"csv":  readCSV,
	"tsv":  readTSV,
	"json": readJSON,
	"xlsx": readWorkbook,
	"xlsm": readWorkbook,
	"xls":  readWorkbook,
}

// Load reads the file at path into a fully materialized Dataset.
//
// Fails with ErrUnsupportedFormat when the extension has no handler,
// ErrNotFound when the path is not readable, and ErrParse when the
// content is structurally malformed.
func Load(path string, opts ...Options) (*dataset.Dataset, error) {
	opt := Options{}
	if len(opts) > 0 {
		opt = opts[0]
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	h, ok := handlers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	// Resolve readability before handing off to the format reader so
	// every format reports missing files the same way.
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}

	headers, rows, err := h(path, opt)
	if err != nil {
		return nil, err
	}

	headers, rows = selectColumns(headers, rows, opt.Columns)
	if opt.MaxRows > 0 && len(rows) > opt.MaxRows {
		rows = rows[:opt.MaxRows]
	}

	ds, err := dataset.FromRows(headers, rows, dataset.InferOptions{
		Types:                opt.Types,
		CategoricalThreshold: opt.CategoricalThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return ds, nil
}

// Extensions returns the registered extensions, for help text.
func Extensions() []string {
	exts := make([]string, 0, len(handlers))
	for ext := range handlers {
		exts = append(exts, ext)
	}
	return exts
}

// selectColumns keeps only the named columns, preserving source order.
func selectColumns(headers []string, rows [][]string, want []string) ([]string, [][]string) {
	if len(want) == 0 {
		return headers, rows
	}

	wantSet := make(map[string]bool, len(want))
	for _, w := range want {
		wantSet[w] = true
		wantSet[dataset.NormalizeName(w)] = true
	}

	var keep []int
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if wantSet[h] || wantSet[dataset.NormalizeName(h)] {
			keep = append(keep, i)
		}
	}

	outHeaders := make([]string, len(keep))
	for j, i := range keep {
		outHeaders[j] = headers[i]
	}

	outRows := make([][]string, len(rows))
	for r, row := range rows {
		out := make([]string, 0, len(keep))
		for _, i := range keep {
			if i < len(row) {
				out = append(out, row[i])
			} else {
				out = append(out, "")
			}
		}
		outRows[r] = out
	}
	return outHeaders, outRows
}
