package dataset

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ============================================================================
// DATASET — In-memory tabular structure
// ============================================================================
// Ordered set of named columns, positionally aligned. Created by the
// loader, read by explore and visual. Neither of those mutates it, so a
// single Dataset can be reused across calls without copying.
// ============================================================================

// Type is the inferred semantic type of a column.
type Type int

const (
	TypeText Type = iota
	TypeNumeric
	TypeTemporal
	TypeBool
	TypeCategorical
)

// String returns the lowercase name of the type.
func (t Type) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeTemporal:
		return "temporal"
	case TypeBool:
		return "bool"
	case TypeCategorical:
		return "categorical"
	default:
		return "text"
	}
}

// Column is a single named column with an inferred type.
//
// Raw cell text is always retained. For numeric columns, Floats holds
// the parsed value per row with NaN marking missing or unparsable
// cells. For temporal columns, Times holds the parsed time per row
// (zero time where missing).
type Column struct {
	Name string
	Type Type

	cells   []string
	missing []bool
	floats  []float64
	times   []time.Time
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.cells) }

// IsMissing reports whether the cell at row i is missing.
func (c *Column) IsMissing(i int) bool { return c.missing[i] }

// Cell returns the raw cell text at row i ("" when missing).
func (c *Column) Cell(i int) string { return c.cells[i] }

// Float returns the parsed numeric value at row i. NaN when the column
// is not numeric or the cell is missing/unparsable.
func (c *Column) Float(i int) float64 {
	if c.floats == nil {
		return nan
	}
	return c.floats[i]
}

// Time returns the parsed temporal value at row i (zero time when the
// column is not temporal or the cell is missing).
func (c *Column) Time(i int) time.Time {
	if c.times == nil {
		return time.Time{}
	}
	return c.times[i]
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.missing {
		if m {
			n++
		}
	}
	return n
}

// Floats returns the non-missing numeric values in row order.
// Returns nil for non-numeric columns.
func (c *Column) Floats() []float64 {
	if c.floats == nil {
		return nil
	}
	out := make([]float64, 0, len(c.floats))
	for i, v := range c.floats {
		if c.missing[i] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Dataset is an ordered collection of equal-length columns.
type Dataset struct {
	Columns []Column
}

// NumRows returns the row count (0 for a dataset with no columns).
func (d *Dataset) NumRows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return d.Columns[0].Len()
}

// NumCols returns the column count.
func (d *Dataset) NumCols() int { return len(d.Columns) }

// Column returns the column with the given name, or nil.
func (d *Dataset) Column(name string) *Column {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i]
		}
	}
	return nil
}

// ColumnNames returns all column names in declaration order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i := range d.Columns {
		names[i] = d.Columns[i].Name
	}
	return names
}

// NumericColumns returns the numeric columns in declaration order.
func (d *Dataset) NumericColumns() []*Column {
	var cols []*Column
	for i := range d.Columns {
		if d.Columns[i].Type == TypeNumeric {
			cols = append(cols, &d.Columns[i])
		}
	}
	return cols
}

// validate checks the equal-length invariant.
func (d *Dataset) validate() error {
	if len(d.Columns) == 0 {
		return nil
	}
	n := d.Columns[0].Len()
	for i := range d.Columns {
		if d.Columns[i].Len() != n {
			return fmt.Errorf("column %q has %d rows, want %d",
				d.Columns[i].Name, d.Columns[i].Len(), n)
		}
	}
	return nil
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// NormalizeName converts "Column Name" or "columnName" → "column_name".
func NormalizeName(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	s = result.String()
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "__", "_")
	s = strings.Trim(s, "_")
	return s
}
