package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// TYPE INFERENCE — Ordered typed probes per column
// ============================================================================
// Probes are applied in fixed priority order: numeric parse → temporal
// parse → boolean → categorical-ratio check → text fallback. A probe
// claims a column when at least 80% of its non-missing cells match.
// A text column is categorical when its distinct/row ratio falls below
// the configurable threshold.
// ============================================================================

var nan = math.NaN()

// probeThreshold is the fraction of non-missing cells that must match a
// typed probe for it to claim the column.
const probeThreshold = 0.8

// DefaultCategoricalThreshold is the distinct-value ratio below which a
// text column is treated as categorical.
const DefaultCategoricalThreshold = 0.5

// InferOptions controls column type inference.
type InferOptions struct {
	// Types forces the given type for named columns, skipping probes.
	Types map[string]Type
	// CategoricalThreshold overrides DefaultCategoricalThreshold.
	// Zero means default.
	CategoricalThreshold float64
}

// FromRows builds a Dataset from a header row and string data rows,
// running type inference per column. Rows shorter than the header are
// padded with missing cells; rows must not be longer than the header.
func FromRows(headers []string, rows [][]string, opts ...InferOptions) (*Dataset, error) {
	opt := InferOptions{}
	if len(opts) > 0 {
		opt = opts[0]
	}
	threshold := opt.CategoricalThreshold
	if threshold == 0 {
		threshold = DefaultCategoricalThreshold
	}

	for r, row := range rows {
		if len(row) > len(headers) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", r+1, len(row), len(headers))
		}
	}

	ds := &Dataset{Columns: make([]Column, len(headers))}
	for i, h := range headers {
		col := buildColumn(strings.TrimSpace(h), i, rows)
		forced, ok := opt.Types[col.Name]
		if !ok {
			forced, ok = opt.Types[NormalizeName(col.Name)]
		}
		if ok {
			applyType(&col, forced, threshold)
		} else {
			applyType(&col, inferType(&col, threshold), threshold)
		}
		ds.Columns[i] = col
	}

	if err := ds.validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// buildColumn collects raw cells and the missing mask for column index i.
func buildColumn(name string, i int, rows [][]string) Column {
	col := Column{
		Name:    name,
		cells:   make([]string, len(rows)),
		missing: make([]bool, len(rows)),
	}
	for r, row := range rows {
		if i >= len(row) {
			col.missing[r] = true
			continue
		}
		val := strings.TrimSpace(row[i])
		if isMissingToken(val) {
			col.missing[r] = true
			continue
		}
		col.cells[r] = val
	}
	return col
}

// isMissingToken reports whether a trimmed cell represents a missing value.
func isMissingToken(s string) bool {
	switch s {
	case "", "null", "NULL", "N/A", "n/a", "NA", "NaN":
		return true
	}
	return false
}

// inferType runs the probe sequence over a column's non-missing cells.
func inferType(col *Column, categoricalThreshold float64) Type {
	var values []string
	for i, v := range col.cells {
		if !col.missing[i] {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return TypeText
	}

	numCount, timeCount, boolCount := 0, 0, 0
	unique := make(map[string]bool)
	for _, v := range values {
		if _, ok := parseNumeric(v); ok {
			numCount++
		}
		if _, ok := parseTemporal(v); ok {
			timeCount++
		}
		if isBoolToken(v) {
			boolCount++
		}
		unique[v] = true
	}

	threshold := int(float64(len(values)) * probeThreshold)
	if threshold < 1 {
		threshold = 1
	}

	// Boolean tokens also parse as numbers ("1"/"0"), so the boolean
	// probe only wins when the numeric probe does not cover more cells.
	switch {
	case numCount >= threshold && numCount >= boolCount:
		return TypeNumeric
	case timeCount >= threshold:
		return TypeTemporal
	case boolCount >= threshold:
		return TypeBool
	}

	total := col.Len()
	if total > 0 && float64(len(unique))/float64(total) < categoricalThreshold {
		return TypeCategorical
	}
	return TypeText
}

// applyType sets the column type and materializes parsed values.
func applyType(col *Column, t Type, categoricalThreshold float64) {
	col.Type = t
	switch t {
	case TypeNumeric:
		col.floats = make([]float64, col.Len())
		for i := range col.cells {
			col.floats[i] = nan
			if col.missing[i] {
				continue
			}
			if f, ok := parseNumeric(col.cells[i]); ok {
				col.floats[i] = f
			} else {
				// Stray unparsable cell in a numeric column counts
				// as missing for downstream statistics.
				col.missing[i] = true
			}
		}
	case TypeTemporal:
		col.times = make([]time.Time, col.Len())
		for i := range col.cells {
			if col.missing[i] {
				continue
			}
			if ts, ok := parseTemporal(col.cells[i]); ok {
				col.times[i] = ts
			} else {
				col.missing[i] = true
			}
		}
	}
}

// ============================================================================
// PROBES
// ============================================================================

// parseNumeric parses a cell as a float, tolerating thousands
// separators and common currency prefixes.
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimPrefix(s, "£")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

var temporalFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
	"Jan-2006",
	"January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// parseTemporal tries the known date layouts in order.
func parseTemporal(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range temporalFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isBoolToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "false", "yes", "no", "1", "0":
		return true
	}
	return false
}
