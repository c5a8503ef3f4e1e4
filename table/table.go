// Package table builds fixture records from godog data tables and YAML files.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	fixture "github.com/goliatone/go-fixtures"
)

var (
	// ErrEmptyTable indicates a table without a header row.
	ErrEmptyTable = errors.New("table: missing header row")
	// ErrRaggedRow indicates a row whose cell count differs from the header.
	ErrRaggedRow = errors.New("table: row width does not match header")
	// ErrDuplicateColumn indicates a header that names the same key twice.
	ErrDuplicateColumn = errors.New("table: duplicate column")
)

// FromTable converts a godog data table into records. The first row is the
// header of dotted keys; every following row becomes one record.
func FromTable(tbl *godog.Table, opts ...fixture.Option) ([]*fixture.Record, error) {
	if tbl == nil || len(tbl.Rows) == 0 {
		return nil, ErrEmptyTable
	}
	header := make([]string, len(tbl.Rows[0].Cells))
	seen := make(map[string]struct{}, len(header))
	for i, cell := range tbl.Rows[0].Cells {
		name := strings.TrimSpace(cell.Value)
		if name == "" {
			return nil, fmt.Errorf("table: header column %d is blank: %w", i+1, fixture.ErrInvalidPath)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
		header[i] = name
	}

	records := make([]*fixture.Record, 0, len(tbl.Rows)-1)
	for rowIndex, row := range tbl.Rows[1:] {
		if len(row.Cells) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d",
				ErrRaggedRow, rowIndex+1, len(row.Cells), len(header))
		}
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i]] = cell.Value
		}
		records = append(records, fixture.New(values, opts...))
	}
	return records, nil
}

// Active drops records flagged with _ignoreRow. A record whose flag is not
// a yes/no keyword stops the filter with an error naming the row.
func Active(records []*fixture.Record) ([]*fixture.Record, error) {
	out := make([]*fixture.Record, 0, len(records))
	for i, record := range records {
		keep, err := record.NotIgnoreRow()
		if err != nil {
			return nil, fmt.Errorf("table: row %d: %w", i+1, err)
		}
		if keep {
			out = append(out, record)
		}
	}
	return out, nil
}
