package track

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColumnProblem describes one schema violation found during validation.
type ColumnProblem struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// SchemaError reports every missing or malformed column found in a
// dataset. Validation collects all problems in one pass rather than
// stopping at the first, so the caller can fix the file in one round.
type SchemaError struct {
	Problems []ColumnProblem `json:"problems"`
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = fmt.Sprintf("%s: %s", p.Column, p.Reason)
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

func (e *SchemaError) add(column, format string, args ...interface{}) {
	e.Problems = append(e.Problems, ColumnProblem{Column: column, Reason: fmt.Sprintf(format, args...)})
}

// Validate checks a raw table against the dataset schema and returns a
// typed Dataset on success. It verifies that every required column is
// present, that numeric columns parse as numbers (empty cells are
// treated as missing values, which downstream policies resolve), that
// no numeric column is entirely empty, and that chainage is complete,
// strictly increasing and free of duplicates. On failure it returns a
// *SchemaError naming every offending column; no partial dataset is
// produced.
func Validate(t *Table) (*Dataset, error) {
	schemaErr := &SchemaError{}

	for _, col := range RequiredColumns {
		if !t.HasColumn(col) {
			schemaErr.add(col, "required column missing")
		}
	}
	if len(schemaErr.Problems) > 0 {
		return nil, schemaErr
	}

	readings := make([]Reading, t.Rows())
	for _, col := range NumericColumns {
		cells := t.Column(col)
		missing := 0
		for i, cell := range cells {
			field := readings[i].Field(col)
			if cell == "" {
				missing++
				*field = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				schemaErr.add(col, "non-numeric value %q at row %d", cell, i+1)
				continue
			}
			*field = v
		}
		if len(cells) > 0 && missing == len(cells) {
			schemaErr.add(col, "column has no values")
		}
	}

	for i, cond := range t.Column(ColComponentCondition) {
		readings[i].ComponentCondition = cond
	}

	chainageClean := true
	for _, p := range schemaErr.Problems {
		if p.Column == ColChainage {
			chainageClean = false
			break
		}
	}
	if chainageClean {
		validateChainage(readings, schemaErr)
	}

	if len(schemaErr.Problems) > 0 {
		return nil, schemaErr
	}
	return &Dataset{Readings: readings}, nil
}

// validateChainage enforces the ordering invariant: chainage values
// must be present in every row and form a strictly increasing
// sequence. Duplicates are a validation error, not a tie to resolve.
func validateChainage(readings []Reading, schemaErr *SchemaError) {
	for i := range readings {
		c := readings[i].Chainage
		if math.IsNaN(c) {
			schemaErr.add(ColChainage, "missing value at row %d", i+1)
			return
		}
		if i == 0 {
			continue
		}
		prev := readings[i-1].Chainage
		if c == prev {
			schemaErr.add(ColChainage, "duplicate chainage %g at row %d", c, i+1)
			return
		}
		if c < prev {
			schemaErr.add(ColChainage, "chainage not strictly increasing at row %d (%g after %g)", i+1, c, prev)
			return
		}
	}
}
