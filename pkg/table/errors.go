package table

import "fmt"

// ColumnNotFoundError reports a reference to a column that does not exist.
// Op is filled in by callers that know which operation was attempted.
type ColumnNotFoundError struct {
	Column string
	Op     string
}

func (e *ColumnNotFoundError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("table: column %q not found (%s)", e.Column, e.Op)
	}
	return fmt.Sprintf("table: column %q not found", e.Column)
}

// TypeError reports a column used with the wrong type, e.g. sorting by a
// numeric column.
type TypeError struct {
	Column string
	Want   ColumnType
	Got    ColumnType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("table: column %q is %s, want %s", e.Column, e.Got, e.Want)
}
