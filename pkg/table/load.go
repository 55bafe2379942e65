package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Date layouts accepted by the loaders, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
}

// LoadCSV reads a table from a CSV file. The first row is the header, and
// each column's type is inferred: dates, then numbers, then strings.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: open %s: %w", path, err)
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("table: read %s: %w", path, err)
	}
	return t, nil
}

// ReadCSV reads a table from CSV data with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRecords(records)
}

// LoadXLSX reads a table from a worksheet in an Excel file. An empty sheet
// name selects the first sheet. The first row is the header.
func LoadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("table: open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("table: %s has no sheets", path)
		}
		sheet = list[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("table: read sheet %q: %w", sheet, err)
	}
	t, err := fromRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("table: sheet %q: %w", sheet, err)
	}
	return t, nil
}

// fromRecords builds a table from a header row plus data rows.
func fromRecords(records [][]string) (*Table, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("need a header row and at least one data row, got %d rows", len(records))
	}
	header := records[0]
	width := len(header)

	raw := make([][]string, width)
	for i := range raw {
		raw[i] = make([]string, 0, len(records)-1)
	}
	for ri, rec := range records[1:] {
		// Excel omits trailing empty cells; pad short rows.
		if len(rec) > width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", ri+2, len(rec), width)
		}
		for ci := 0; ci < width; ci++ {
			v := ""
			if ci < len(rec) {
				v = rec[ci]
			}
			raw[ci] = append(raw[ci], v)
		}
	}

	cols := make([]Column, width)
	for i, name := range header {
		cols[i] = inferColumn(name, raw[i])
	}
	return New(cols...)
}

// inferColumn picks the narrowest type that fits every value in the column.
func inferColumn(name string, values []string) Column {
	if times, ok := parseTimes(values); ok {
		return TimeColumn(name, times)
	}
	if nums, ok := parseNumbers(values); ok {
		return NumberColumn(name, nums)
	}
	return StringColumn(name, values)
}

func parseTimes(values []string) ([]time.Time, bool) {
	out := make([]time.Time, len(values))
	for i, v := range values {
		parsed := false
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				out[i] = ts
				parsed = true
				break
			}
		}
		if !parsed {
			return nil, false
		}
	}
	return out, true
}

func parseNumbers(values []string) ([]float64, bool) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// WriteCSV writes the table as CSV with a header row. Time cells use the
// 2006-01-02 layout, numbers drop trailing zeroes.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return err
	}
	rec := make([]string, len(t.cols))
	for ri := 0; ri < t.rows; ri++ {
		for ci, c := range t.cols {
			rec[ci] = c.cell(ri)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
