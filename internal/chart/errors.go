package chart

import (
	"errors"
	"fmt"

	"github.com/graficos-io/graficos/pkg/table"
)

// InvalidConfigError reports a StyleConfig a builder cannot work with: a
// non-positive window size, a non-positive scale factor, or an unknown
// format template name.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("chart: invalid config: %s: %s", e.Field, e.Reason)
}

// withOp stamps the attempted operation onto column-lookup failures so the
// caller sees both the missing column and which builder wanted it.
func withOp(err error, op string) error {
	var cnf *table.ColumnNotFoundError
	if errors.As(err, &cnf) {
		return &table.ColumnNotFoundError{Column: cnf.Column, Op: op}
	}
	return fmt.Errorf("%s: %w", op, err)
}
