package explore

import (
	"math"
	"strings"
	"testing"

	"github.com/tabscope-org/tabscope/dataset"
)

// ============================================================================
// EXPLORER TESTS
// ============================================================================

func mustDataset(t *testing.T, headers []string, rows [][]string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromRows(headers, rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	return ds
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExploreRowCountInvariant(t *testing.T) {
	ds := mustDataset(t, []string{"a", "b"}, [][]string{
		{"1", "x"},
		{"NA", "y"},
		{"3", "NA"},
	})
	r := Explore(ds)

	if r.RowCount != 3 {
		t.Fatalf("RowCount = %d, want 3", r.RowCount)
	}
	for _, c := range r.Columns {
		if c.Missing+c.NonMissing != r.RowCount {
			t.Errorf("column %q: missing(%d) + non-missing(%d) != rows(%d)",
				c.Name, c.Missing, c.NonMissing, r.RowCount)
		}
	}
}

func TestExploreNumericStats(t *testing.T) {
	ds := mustDataset(t, []string{"v"}, [][]string{{"1"}, {"2"}, {"3"}, {"4"}})
	r := Explore(ds)

	n := r.Columns[0].Numeric
	if n == nil {
		t.Fatal("numeric stats missing")
	}
	if n.Min != 1 || n.Max != 4 {
		t.Errorf("min/max = %v/%v, want 1/4", n.Min, n.Max)
	}
	if !almostEqual(n.Mean, 2.5) {
		t.Errorf("mean = %v, want 2.5", n.Mean)
	}
	// Unbiased sample std of 1..4: sqrt(5/3).
	if !almostEqual(n.Std, math.Sqrt(5.0/3.0)) {
		t.Errorf("std = %v, want %v", n.Std, math.Sqrt(5.0/3.0))
	}
	// Linear interpolation at rank p*(n-1).
	if !almostEqual(n.Q1, 1.75) {
		t.Errorf("q1 = %v, want 1.75", n.Q1)
	}
	if !almostEqual(n.Median, 2.5) {
		t.Errorf("median = %v, want 2.5", n.Median)
	}
	if !almostEqual(n.Q3, 3.25) {
		t.Errorf("q3 = %v, want 3.25", n.Q3)
	}
	if n.Min > n.Mean || n.Mean > n.Max {
		t.Errorf("want min <= mean <= max, got %v/%v/%v", n.Min, n.Mean, n.Max)
	}
	if n.Std < 0 {
		t.Errorf("std = %v, want >= 0", n.Std)
	}
}

func TestExploreSingleValueStdUndefined(t *testing.T) {
	ds := mustDataset(t, []string{"v"}, [][]string{{"7"}})
	n := Explore(ds).Columns[0].Numeric
	if !math.IsNaN(n.Std) {
		t.Errorf("std = %v for n=1, want NaN", n.Std)
	}
	if n.Min != 7 || n.Max != 7 || n.Mean != 7 || n.Median != 7 {
		t.Errorf("min/max/mean/median = %v/%v/%v/%v, want all 7", n.Min, n.Max, n.Mean, n.Median)
	}
}

func TestExploreAllMissingColumn(t *testing.T) {
	ds := mustDataset(t, []string{"v", "anchor"}, [][]string{
		{"NA", "1"}, {"", "2"}, {"null", "3"},
	})
	// All-missing column infers as text; force numeric to exercise the
	// degenerate statistics path.
	ds2, err := dataset.FromRows(
		[]string{"v", "anchor"},
		[][]string{{"NA", "1"}, {"", "2"}, {"null", "3"}},
		dataset.InferOptions{Types: map[string]dataset.Type{"v": dataset.TypeNumeric}},
	)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}

	n := Explore(ds2).Columns[0].Numeric
	if n == nil {
		t.Fatal("numeric stats missing")
	}
	for name, v := range map[string]float64{
		"min": n.Min, "max": n.Max, "mean": n.Mean,
		"std": n.Std, "q1": n.Q1, "median": n.Median, "q3": n.Q3,
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s = %v for all-missing column, want NaN", name, v)
		}
	}

	// The text column path degrades too, without erroring.
	g := Explore(ds).Columns[0].Categorical
	if g == nil || g.Distinct != 0 || g.TopCount != 0 {
		t.Errorf("categorical stats for all-missing column = %+v, want zeroes", g)
	}
}

func TestExploreEmptyDataset(t *testing.T) {
	ds := mustDataset(t, []string{"a", "b"}, nil)
	r := Explore(ds)

	if r.RowCount != 0 || r.ColumnCount != 2 {
		t.Fatalf("shape = %dx%d, want 0x2", r.RowCount, r.ColumnCount)
	}
	for _, c := range r.Columns {
		if c.Missing != 0 || c.NonMissing != 0 {
			t.Errorf("column %q counts = %d/%d, want 0/0", c.Name, c.Missing, c.NonMissing)
		}
	}

	// A no-column dataset is also a valid input.
	empty := Explore(&dataset.Dataset{})
	if empty.RowCount != 0 || empty.ColumnCount != 0 {
		t.Errorf("shape = %dx%d, want 0x0", empty.RowCount, empty.ColumnCount)
	}
}

func TestExploreCategoricalStats(t *testing.T) {
	ds := mustDataset(t, []string{"dept"}, [][]string{
		{"sales"}, {"dev"}, {"sales"}, {"ops"}, {"sales"}, {"dev"}, {"sales"},
	})
	c := Explore(ds).Columns[0]
	if c.Type != dataset.TypeCategorical {
		t.Fatalf("dept inferred %s, want categorical", c.Type)
	}
	g := c.Categorical
	if g.Distinct != 3 {
		t.Errorf("distinct = %d, want 3", g.Distinct)
	}
	if g.Top != "sales" || g.TopCount != 4 {
		t.Errorf("top = %q (%d), want \"sales\" (4)", g.Top, g.TopCount)
	}
}

func TestWriteTextIsPureRendering(t *testing.T) {
	ds := mustDataset(t, []string{"v", "dept"}, [][]string{
		{"1", "sales"}, {"2", "sales"}, {"NA", "dev"}, {"4", "dev"},
	})
	r := Explore(ds)

	var buf strings.Builder
	if err := WriteText(&buf, r); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"4 rows x 2 columns", "v", "dept", "numeric", "missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Rendering twice yields identical output: nothing is recomputed or
	// consumed.
	var buf2 strings.Builder
	if err := WriteText(&buf2, r); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if buf2.String() != out {
		t.Error("repeated rendering of the same report differs")
	}
}
