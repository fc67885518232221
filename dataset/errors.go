package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnCount is returned when a row does not match the header width
	ErrColumnCount = errors.New("column count mismatch")
	// ErrMissingColumn is returned when a table lacks a required column
	ErrMissingColumn = errors.New("missing column")
	// ErrEmptyTable is returned when a file has no header row
	ErrEmptyTable = errors.New("no header row")
)

// IOError reports a failure to open, read, write or fetch a file
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError reports a structural problem in a delimited table. Line is 1-based
// and counts the header; it is 0 when the problem is not tied to a line.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
