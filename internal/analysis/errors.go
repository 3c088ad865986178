package analysis

import (
	"errors"
	"fmt"
)

// ErrColumnMissing signals that a requested column is not in the table. It is
// not fatal; callers show a notice in place of the result.
var ErrColumnMissing = errors.New("column not found")

// ColumnMissingError names the missing column.
type ColumnMissingError struct {
	Column string
}

func (e *ColumnMissingError) Error() string {
	return fmt.Sprintf("column not found: %s", e.Column)
}

func (e *ColumnMissingError) Is(target error) bool { return target == ErrColumnMissing }

// MissingColumn extracts the column name from a column-missing error.
func MissingColumn(err error) (string, bool) {
	var cm *ColumnMissingError
	if errors.As(err, &cm) {
		return cm.Column, true
	}
	return "", false
}
