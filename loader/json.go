package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// readJSON reads a records-oriented JSON file: a top-level array of
// flat objects, one per row. Column order is the key order of the
// records as written; keys absent from a record become missing cells.
func readJSON(path string, _ Options) ([]string, [][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	var headers []string
	index := make(map[string]int)
	cells := make([]map[string]string, len(raw))

	for r, msg := range raw {
		rec, keys, err := decodeRecord(msg)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: record %d: %v", ErrParse, path, r+1, err)
		}
		for _, key := range keys {
			if _, seen := index[key]; !seen {
				index[key] = len(headers)
				headers = append(headers, key)
			}
		}
		cells[r] = rec
	}

	rows := make([][]string, len(raw))
	for r, rec := range cells {
		row := make([]string, len(headers))
		for key, val := range rec {
			row[index[key]] = val
		}
		rows[r] = row
	}

	return headers, rows, nil
}

// decodeRecord decodes one flat JSON object, preserving key order.
func decodeRecord(msg json.RawMessage) (map[string]string, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("record is not an object")
	}

	rec := make(map[string]string)
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := keyTok.(string)

		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, nil, err
		}
		cell, err := jsonCell(val)
		if err != nil {
			return nil, nil, fmt.Errorf("key %q: %v", key, err)
		}

		if _, dup := rec[key]; !dup {
			keys = append(keys, key)
		}
		rec[key] = cell
	}
	return rec, keys, nil
}

// jsonCell renders a decoded JSON scalar as cell text. Nested values
// are structural malformation for a tabular record.
func jsonCell(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case json.Number:
		return t.String(), nil
	default:
		return "", fmt.Errorf("nested value is not tabular")
	}
}

