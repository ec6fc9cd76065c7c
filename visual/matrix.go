// Package visual computes the pairwise correlation structure of a
// Dataset's numeric columns and renders it as image artifacts.
package visual

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	"github.com/tabscope-org/tabscope/dataset"
)

// ============================================================================
// CORRELATION MATRIX — Pairwise Pearson over numeric columns
// ============================================================================
// Recomputed on every call, never persisted. Only numeric columns
// participate; the matrix is symmetric with a unit diagonal.
// ============================================================================

// Sentinel errors. Callers match with errors.Is.
var (
	// ErrInsufficientData means fewer than two numeric columns exist.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrRender means the output destination could not be written.
	ErrRender = errors.New("render error")
)

// MissingPolicy selects how rows with missing values are excluded.
type MissingPolicy int

const (
	// PairwiseComplete excludes a row from a pair's coefficient only
	// when either of that pair's cells is missing. Different cells of
	// the matrix may be computed over different row subsets.
	PairwiseComplete MissingPolicy = iota
	// ListwiseComplete excludes a row from every coefficient when any
	// numeric column is missing in it.
	ListwiseComplete
)

// Matrix is a square, symmetric Pearson correlation table. Values[i][j]
// is the coefficient between Columns[i] and Columns[j], in [-1, 1], NaN
// when a pair has fewer than two complete rows or zero variance.
type Matrix struct {
	Columns []string
	Values  [][]float64
}

// At returns the coefficient for the column pair (i, j).
func (m *Matrix) At(i, j int) float64 { return m.Values[i][j] }

// Correlate computes the correlation matrix over the Dataset's numeric
// columns, in their Dataset order. Fails with ErrInsufficientData when
// fewer than two numeric columns exist.
func Correlate(ds *dataset.Dataset, opts ...Option) (*Matrix, error) {
	cfg := applyOptions(opts)

	cols := ds.NumericColumns()
	if len(cols) < 2 {
		return nil, fmt.Errorf("%w: %d numeric columns, need at least 2", ErrInsufficientData, len(cols))
	}

	keep := allRows(ds.NumRows())
	if cfg.policy == ListwiseComplete {
		keep = completeRows(cols)
	}

	m := &Matrix{
		Columns: make([]string, len(cols)),
		Values:  make([][]float64, len(cols)),
	}
	for i, col := range cols {
		m.Columns[i] = col.Name
		m.Values[i] = make([]float64, len(cols))
	}

	for i := range cols {
		m.Values[i][i] = 1.0
		for j := i + 1; j < len(cols); j++ {
			r := pearson(cols[i], cols[j], keep)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}

	return m, nil
}

// pearson computes the coefficient between two columns over the rows in
// keep where both cells are present.
func pearson(a, b *dataset.Column, keep []bool) float64 {
	var xs, ys []float64
	for i := 0; i < a.Len(); i++ {
		if !keep[i] || a.IsMissing(i) || b.IsMissing(i) {
			continue
		}
		xs = append(xs, a.Float(i))
		ys = append(ys, b.Float(i))
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

func allRows(n int) []bool {
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}
	return keep
}

// completeRows marks rows with no missing cell in any numeric column.
func completeRows(cols []*dataset.Column) []bool {
	if len(cols) == 0 {
		return nil
	}
	keep := make([]bool, cols[0].Len())
	for i := range keep {
		keep[i] = true
		for _, c := range cols {
			if c.IsMissing(i) {
				keep[i] = false
				break
			}
		}
	}
	return keep
}

// ============================================================================
// TEXT RENDERING
// ============================================================================

// WriteText renders the matrix as a plain-text table.
func (m *Matrix) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, name := range m.Columns {
		fmt.Fprintf(tw, "\t%s", name)
	}
	fmt.Fprintln(tw)

	for i, name := range m.Columns {
		fmt.Fprint(tw, name)
		for j := range m.Columns {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				fmt.Fprint(tw, "\tNaN")
			} else {
				fmt.Fprintf(tw, "\t%.3f", v)
			}
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
