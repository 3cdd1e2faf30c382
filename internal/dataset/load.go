package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads the dataset at path. The format is chosen by file extension:
// ".csv" or ".xlsx".
func Load(path string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // dataset path comes from config
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	var t *Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		t, err = ReadCSV(f)
	case ".xlsx":
		t, err = ReadXLSX(f)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (want .csv or .xlsx)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// ReadCSV reads a comma-separated table whose first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("dataset: missing header row")
	}
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return New(header, rows)
}

// ReadXLSX reads the first sheet of a workbook. The first non-empty row is
// the header; trailing empty cells that the workbook omits are restored so
// every row matches the header width.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // in-memory workbook

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("dataset: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, errors.New("dataset: missing header row")
	}

	header := rows[0]
	var data [][]string
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		if len(row) < len(header) {
			row = append(row, make([]string, len(header)-len(row))...)
		}
		data = append(data, row)
	}
	return New(header, data)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
