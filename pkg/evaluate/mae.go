// Package evaluate scores an imputed table against a complete reference.
package evaluate

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
)

// ErrIncompleteReference indicates the reference lacks a value at a position
// the imputed table carries one.
var ErrIncompleteReference = errors.New("evaluate: reference table is missing a compared value")

// Result summarises one comparison.
type Result struct {
	MAE      float64 `json:"mae"`
	Compared int     `json:"compared"`
	Unfilled int     `json:"unfilled"`
}

// MAE returns the mean absolute error between imputed and reference over the
// cells present in imputed.
func MAE(imputed, reference *ds.Table) (float64, error) {
	res, err := Compare(imputed, reference)
	if err != nil {
		return 0, err
	}
	return res.MAE, nil
}

// Compare computes the mean absolute error and counts the cells it skipped
// because imputation left them missing. Zero compared cells is reported as a
// *dataset.DivisionError rather than a zero error.
func Compare(imputed, reference *ds.Table) (Result, error) {
	if err := reference.CheckSameShape(imputed); err != nil {
		return Result{}, err
	}
	var res Result
	diffs := make([]float64, 0, imputed.Rows()*imputed.Cols())
	for i := 0; i < imputed.Rows(); i++ {
		for j := 0; j < imputed.Cols(); j++ {
			got, ok := imputed.At(i, j).Float()
			if !ok {
				res.Unfilled++
				continue
			}
			want, ok := reference.At(i, j).Float()
			if !ok {
				return Result{}, fmt.Errorf("%w: row %d column %d", ErrIncompleteReference, i, j)
			}
			diffs = append(diffs, math.Abs(got-want))
		}
	}
	res.Compared = len(diffs)
	if res.Compared == 0 {
		return res, &ds.DivisionError{Op: "mean_absolute_error", Column: -1}
	}
	mae, err := stats.Mean(diffs)
	if err != nil {
		return res, fmt.Errorf("mean_absolute_error: %w", err)
	}
	res.MAE = mae
	return res, nil
}
