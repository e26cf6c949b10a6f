package track

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is a raw tabular dataset as read from CSV: untyped cell text
// addressed by column name. It is the input to Validate, which is the
// only way to obtain a typed Dataset.
type Table struct {
	columns map[string][]string
	rows    int
}

// Rows returns the number of data rows in the table.
func (t *Table) Rows() int { return t.rows }

// Column returns the raw cell values for a column, or nil if the
// column is absent.
func (t *Table) Column(name string) []string { return t.columns[name] }

// HasColumn reports whether the named column is present in the header.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// ReadCSV reads a header-first CSV stream into a Table. Column names
// are trimmed and lower-cased so the validator sees a canonical
// header. Only structural CSV errors are reported here; schema
// problems are the validator's job.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty dataset: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	names := make([]string, len(header))
	columns := make(map[string][]string, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		names[i] = name
		columns[name] = nil
	}

	rows := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", rows+2, err)
		}
		for i, name := range names {
			columns[name] = append(columns[name], strings.TrimSpace(record[i]))
		}
		rows++
	}

	return &Table{columns: columns, rows: rows}, nil
}

// TableFromReadings builds a Table from typed readings. Used by tests
// and tools that synthesize datasets without a CSV round trip.
func TableFromReadings(readings []Reading) *Table {
	t := &Table{
		columns: make(map[string][]string, len(RequiredColumns)),
		rows:    len(readings),
	}
	for _, col := range NumericColumns {
		vals := make([]string, len(readings))
		for i := range readings {
			vals[i] = formatCell(*readings[i].Field(col))
		}
		t.columns[col] = vals
	}
	conditions := make([]string, len(readings))
	for i := range readings {
		conditions[i] = readings[i].ComponentCondition
	}
	t.columns[ColComponentCondition] = conditions
	return t
}

func formatCell(v float64) string {
	if v != v { // NaN marks a missing value; emit an empty cell
		return ""
	}
	return fmt.Sprintf("%g", v)
}
