// Package converters normalizes parser-produced values into portable
// scalars before they cross the persistence boundary.
package converters

import (
	"strconv"
	"strings"
)

// Scalar converts a raw cell value into a plain scalar: int64 for
// integral numbers, float64 for other numerics, the original string
// otherwise. Empty cells stay empty strings.
func Scalar(cell string) any {
	v := strings.TrimSpace(cell)
	if v == "" {
		return cell
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return cell
}

// Scalars converts a whole column of raw cell values.
func Scalars(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = Scalar(c)
	}
	return out
}

// Numeric reports whether a cell parses as a number. Blank cells are
// not numeric.
func Numeric(cell string) bool {
	v := strings.TrimSpace(cell)
	if v == "" {
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

// NumericColumn reports whether every non-blank value in the column is
// numeric and at least one value is present. Blank cells are tolerated
// the way a sparse spreadsheet column would be.
func NumericColumn(cells []string) bool {
	seen := false
	for _, c := range cells {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if !Numeric(c) {
			return false
		}
		seen = true
	}
	return seen
}

// NumericScalars converts a numeric column, mapping blank cells to nil
// so the gap survives JSON serialization.
func NumericScalars(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		if strings.TrimSpace(c) == "" {
			out[i] = nil
			continue
		}
		out[i] = Scalar(c)
	}
	return out
}
