package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty indicates a table without rows or columns.
	ErrEmpty = errors.New("dataset: table must have at least one row and one column")
	// ErrShape indicates ragged rows or tables of different dimensions.
	ErrShape = errors.New("dataset: shape mismatch")
	// ErrUndefined indicates an average over zero values.
	ErrUndefined = errors.New("dataset: division by zero")
	// ErrDuplicateName indicates two columns sharing a name.
	ErrDuplicateName = errors.New("dataset: duplicate column name")
)

// ShapeError describes a dimension mismatch. It matches ErrShape.
type ShapeError struct {
	What string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("dataset: shape mismatch in %s: want %d, got %d", e.What, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error { return ErrShape }

// DivisionError reports an average that has no values to divide by.
// Column is -1 when the operation spans the whole table. It matches ErrUndefined.
type DivisionError struct {
	Op     string
	Column int
}

func (e *DivisionError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("%s: no values to average: %v", e.Op, ErrUndefined)
	}
	return fmt.Sprintf("%s: column %d has no present values: %v", e.Op, e.Column, ErrUndefined)
}

func (e *DivisionError) Unwrap() error { return ErrUndefined }
