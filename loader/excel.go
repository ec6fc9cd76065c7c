package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readWorkbook reads a spreadsheet workbook sheet into header + rows.
// Options.Sheet selects the sheet by name; empty means the first sheet.
func readWorkbook(path string, opt Options) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	defer f.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, nil, fmt.Errorf("%w: %s has no sheets", ErrParse, path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		if _, ok := err.(excelize.ErrSheetNotExist); ok {
			return nil, nil, fmt.Errorf("%w: sheet %q in %s", ErrNotFound, sheet, path)
		}
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: sheet %q in %s has no header row", ErrParse, sheet, path)
	}

	return rows[0], rows[1:], nil
}
