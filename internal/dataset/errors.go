package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the configured dataset path does not resolve to a
	// readable file.
	ErrNotFound = errors.New("dataset not found")
	// ErrMissingOutcome indicates the mandatory outcome column is absent.
	ErrMissingOutcome = errors.New("outcome column missing")
)

// NotFoundError carries the path that failed to resolve.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("CSV not found at:\n%s (%v)", e.Path, e.Err)
	}
	return fmt.Sprintf("CSV not found at:\n%s", e.Path)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
func (e *NotFoundError) Unwrap() error        { return e.Err }

// MissingOutcomeError lists the columns that were found instead.
type MissingOutcomeError struct {
	Column  string
	Columns []string
}

func (e *MissingOutcomeError) Error() string {
	if len(e.Columns) == 0 {
		return fmt.Sprintf("required column %q not found (file has no header)", e.Column)
	}
	return fmt.Sprintf("required column %q not found; available columns: %s", e.Column, strings.Join(e.Columns, ", "))
}

func (e *MissingOutcomeError) Is(target error) bool { return target == ErrMissingOutcome }
