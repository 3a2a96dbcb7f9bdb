package fixtures

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// parseXLSX reads a spreadsheet fixture file. Each sheet is one table named
// after the sheet; the first row holds column names and every following row
// is one record. Empty sheets are skipped.
func parseXLSX(path string) (Fixture, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("failed to open fixture %s: %w", path, err)
	}
	defer f.Close()

	fixture := Fixture{Path: path}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return Fixture{}, fmt.Errorf("failed to read sheet %s of %s: %w", sheet, path, err)
		}
		if len(rows) < 2 {
			continue
		}

		headers := rows[0]
		table := Table{Name: sheet}
		for _, cells := range rows[1:] {
			row := Row{}
			for i, cell := range cells {
				if i >= len(headers) || headers[i] == "" {
					continue
				}
				row[headers[i]] = parseCell(cell)
			}
			if len(row) > 0 {
				table.Rows = append(table.Rows, row)
			}
		}
		if len(table.Rows) > 0 {
			fixture.Tables = append(fixture.Tables, table)
		}
	}

	return fixture, nil
}

// parseCell converts a spreadsheet cell into the closest Go type so the ORM
// receives typed values instead of raw strings.
func parseCell(cell string) interface{} {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	if fl, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return fl
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return true
	case "false":
		return false
	}
	return cell
}
