package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/tabscope-org/tabscope/dataset"
)

// ============================================================================
// LOADER TESTS
// ============================================================================

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "data.csv", "a,b,c\n1,2,3\n4,5,6\n")

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if ds.NumCols() != 3 {
		t.Errorf("NumCols = %d, want 3", ds.NumCols())
	}
	if ds.NumRows() != 2 {
		t.Errorf("NumRows = %d, want 2", ds.NumRows())
	}
	for _, col := range ds.Columns {
		if col.Type != dataset.TypeNumeric {
			t.Errorf("column %q inferred %s, want numeric", col.Name, col.Type)
		}
		if col.MissingCount() != 0 {
			t.Errorf("column %q has %d missing, want 0", col.Name, col.MissingCount())
		}
	}
}

func TestLoadCSVCaseInsensitiveExtension(t *testing.T) {
	path := writeFile(t, "data.CSV", "a\n1\n")
	if _, err := Load(path); err != nil {
		t.Fatalf("Load failed on .CSV: %v", err)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load = %v, want ErrNotFound", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "data.xyz", "a,b\n1,2\n")
	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadRaggedCSVIsParseError(t *testing.T) {
	path := writeFile(t, "ragged.csv", "a,b\n1,2\n3,4,5\n")
	_, err := Load(path)
	if !errors.Is(err, ErrParse) {
		t.Errorf("Load = %v, want ErrParse", err)
	}
}

func TestLoadEmptyCSVIsParseError(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	_, err := Load(path)
	if !errors.Is(err, ErrParse) {
		t.Errorf("Load = %v, want ErrParse", err)
	}
}

func TestLoadTSV(t *testing.T) {
	path := writeFile(t, "data.tsv", "x\ty\n1\thello\n2\tworld\n")
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := ds.Column("x").Type; got != dataset.TypeNumeric {
		t.Errorf("x inferred %s, want numeric", got)
	}
}

func TestLoadOptions(t *testing.T) {
	path := writeFile(t, "data.csv", "a,b,c\n1,x,3\n4,y,6\n7,z,9\n")

	ds, err := Load(path, Options{
		Columns: []string{"a", "c"},
		MaxRows: 2,
		Types:   map[string]dataset.Type{"c": dataset.TypeText},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := ds.ColumnNames(); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("ColumnNames = %v, want [a c]", got)
	}
	if ds.NumRows() != 2 {
		t.Errorf("NumRows = %d, want 2 (MaxRows)", ds.NumRows())
	}
	if got := ds.Column("c").Type; got != dataset.TypeText {
		t.Errorf("c inferred %s, want text (override)", got)
	}
}

func TestLoadJSONRecords(t *testing.T) {
	path := writeFile(t, "data.json",
		`[{"name":"alice","age":34,"active":true},{"name":"bob","age":28},{"name":"carol","age":41,"active":false}]`)

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := ds.ColumnNames(); len(got) != 3 || got[0] != "name" || got[1] != "age" || got[2] != "active" {
		t.Fatalf("ColumnNames = %v, want [name age active]", got)
	}
	if got := ds.Column("age").Type; got != dataset.TypeNumeric {
		t.Errorf("age inferred %s, want numeric", got)
	}
	// bob has no "active" key.
	if got := ds.Column("active").MissingCount(); got != 1 {
		t.Errorf("active missing = %d, want 1", got)
	}
}

func TestLoadJSONMalformed(t *testing.T) {
	path := writeFile(t, "bad.json", `{"not":"an array"}`)
	_, err := Load(path)
	if !errors.Is(err, ErrParse) {
		t.Errorf("Load = %v, want ErrParse", err)
	}
}

func TestLoadJSONNestedIsParseError(t *testing.T) {
	path := writeFile(t, "nested.json", `[{"a":{"deep":1}}]`)
	_, err := Load(path)
	if !errors.Is(err, ErrParse) {
		t.Errorf("Load = %v, want ErrParse", err)
	}
}

func TestLoadWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]any{
		{"region", "revenue"},
		{"north", 1200.5},
		{"south", 980.0},
		{"west", 1410.25},
	}
	for r, row := range cells {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.NumRows() != 3 {
		t.Errorf("NumRows = %d, want 3", ds.NumRows())
	}
	if got := ds.Column("revenue").Type; got != dataset.TypeNumeric {
		t.Errorf("revenue inferred %s, want numeric", got)
	}
	if got := ds.Column("region").Type; got == dataset.TypeNumeric {
		t.Errorf("region inferred numeric, want a string type")
	}
}

func TestLoadWorkbookMissingSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.xlsx")

	f := excelize.NewFile()
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	_, err := Load(path, Options{Sheet: "DoesNotExist"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load = %v, want ErrNotFound", err)
	}
}
