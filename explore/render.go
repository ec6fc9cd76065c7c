package explore

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"
)

// ============================================================================
// TEXT RENDERING — Human-readable report output
// ============================================================================
// Rendering is a pure function of an already-computed Report. It never
// recomputes statistics, so the same Report can be rendered to several
// destinations.
// ============================================================================

// WriteText renders the report as plain text to w.
func WriteText(w io.Writer, r *Report) error {
	if _, err := fmt.Fprintf(w, "Shape: %d rows x %d columns\n\n", r.RowCount, r.ColumnCount); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "column\ttype\tmissing\tnon-missing\tsummary")
	for _, c := range r.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", c.Name, c.Type, c.Missing, c.NonMissing, summaryText(c))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return nil
}

// Print renders the report to stdout.
func (r *Report) Print() {
	// Rendering to stdout cannot usefully report write failures.
	_ = WriteText(os.Stdout, r)
}

// summaryText formats the type-appropriate statistics for one column.
func summaryText(c ColumnSummary) string {
	switch {
	case c.Numeric != nil:
		n := c.Numeric
		return fmt.Sprintf("min=%s max=%s mean=%s std=%s q1=%s median=%s q3=%s",
			num(n.Min), num(n.Max), num(n.Mean), num(n.Std), num(n.Q1), num(n.Median), num(n.Q3))
	case c.Categorical != nil:
		g := c.Categorical
		if g.Distinct == 0 {
			return "distinct=0"
		}
		return fmt.Sprintf("distinct=%d top=%q freq=%d", g.Distinct, g.Top, g.TopCount)
	default:
		return "-"
	}
}

// num formats a statistic, keeping NaN readable.
func num(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
