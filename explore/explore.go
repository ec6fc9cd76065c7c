// Package explore computes descriptive statistics and data-quality
// signals over a loaded Dataset.
package explore

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tabscope-org/tabscope/dataset"
)

// ============================================================================
// EXPLORER — Descriptive statistics per column
// ============================================================================
// Explore never fails: an empty dataset or an all-missing column
// degrades to NaN statistics, not an error. The report is computed
// fresh on every call and never cached.
// ============================================================================

// Report is a read-only snapshot describing a Dataset.
type Report struct {
	RowCount    int
	ColumnCount int
	Columns     []ColumnSummary
}

// ColumnSummary describes one column, in declaration order.
type ColumnSummary struct {
	Name       string
	Type       dataset.Type
	Missing    int
	NonMissing int

	// Exactly one of these is populated based on Type; both nil for
	// temporal columns.
	Numeric     *NumericStats
	Categorical *CategoricalStats
}

// NumericStats holds basic statistics for a numeric column. All fields
// are NaN when the column has no non-missing values; Std is NaN when
// fewer than two values exist.
type NumericStats struct {
	Min    float64
	Max    float64
	Mean   float64
	Std    float64
	Q1     float64
	Median float64
	Q3     float64
}

// CategoricalStats holds statistics for categorical, boolean, and text
// columns.
type CategoricalStats struct {
	Distinct int
	Top      string // most frequent value ("" when no values)
	TopCount int
}

// Explore computes a Report over the Dataset. The input is never
// mutated.
func Explore(ds *dataset.Dataset) *Report {
	report := &Report{
		RowCount:    ds.NumRows(),
		ColumnCount: ds.NumCols(),
		Columns:     make([]ColumnSummary, 0, ds.NumCols()),
	}

	for i := range ds.Columns {
		col := &ds.Columns[i]
		summary := ColumnSummary{
			Name:       col.Name,
			Type:       col.Type,
			Missing:    col.MissingCount(),
			NonMissing: col.Len() - col.MissingCount(),
		}

		switch col.Type {
		case dataset.TypeNumeric:
			summary.Numeric = numericStats(col.Floats())
		case dataset.TypeCategorical, dataset.TypeBool, dataset.TypeText:
			summary.Categorical = categoricalStats(col)
		}

		report.Columns = append(report.Columns, summary)
	}

	return report
}

// numericStats computes min/max/mean/std/quartiles over the non-missing
// values of a numeric column.
func numericStats(values []float64) *NumericStats {
	nan := math.NaN()
	s := &NumericStats{Min: nan, Max: nan, Mean: nan, Std: nan, Q1: nan, Median: nan, Q3: nan}
	if len(values) == 0 {
		return s
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		// Unbiased sample standard deviation (denominator n-1).
		s.Std = stat.StdDev(values, nil)
	}
	s.Q1 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q3 = quantile(sorted, 0.75)
	return s
}

// quantile returns the p-quantile of sorted values using linear
// interpolation between ranked values (rank = p * (n-1)).
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	rank := p * float64(n-1)
	lower := int(rank)
	if lower >= n-1 {
		return sorted[n-1]
	}
	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[lower+1]*weight
}

// categoricalStats computes distinct count and mode over non-missing
// cells.
func categoricalStats(col *dataset.Column) *CategoricalStats {
	counts := make(map[string]int)
	order := make([]string, 0)
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			continue
		}
		v := col.Cell(i)
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	s := &CategoricalStats{Distinct: len(counts)}
	// First-seen wins ties so the mode is deterministic.
	for _, v := range order {
		if counts[v] > s.TopCount {
			s.Top = v
			s.TopCount = counts[v]
		}
	}
	return s
}
