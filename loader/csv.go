package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// readCSV reads a comma-separated file into header + rows.
// Rows with an inconsistent cell count are a structural error here, not
// silently skipped: the caller asked to materialize this file.
func readCSV(path string, _ Options) ([]string, [][]string, error) {
	return readDelimited(path, ',')
}

// readTSV reads a tab-separated file.
func readTSV(path string, _ Options) ([]string, [][]string, error) {
	return readDelimited(path, '\t')
}

func readDelimited(path string, comma rune) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = comma

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%w: %s has no header row", ErrParse, path)
		}
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}
