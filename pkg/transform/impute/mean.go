package impute

import (
	"context"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
)

// Mean replaces each missing cell with the mean of the present cells in its
// column. A column with no present values fails with *dataset.DivisionError.
type Mean struct {
	// Columns restricts imputation to these column indexes; nil means all.
	Columns []int
}

func (t *Mean) Name() string { return "mean" }

func (t *Mean) Apply(ctx context.Context, in *ds.Table) (*ds.Table, error) {
	cols, err := t.columns(in)
	if err != nil {
		return nil, err
	}
	b := in.ToBuilder()
	for _, j := range cols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !hasMissing(in, j) {
			continue
		}
		mean, err := ColumnMean(in, j)
		if err != nil {
			return nil, err
		}
		for i := 0; i < in.Rows(); i++ {
			if in.At(i, j).IsMissing() {
				b.Set(i, j, mean)
			}
		}
	}
	return b.Build(), nil
}

func (t *Mean) columns(in *ds.Table) ([]int, error) {
	if t.Columns == nil {
		cols := make([]int, in.Cols())
		for j := range cols {
			cols[j] = j
		}
		return cols, nil
	}
	for _, j := range t.Columns {
		if j < 0 || j >= in.Cols() {
			return nil, fmt.Errorf("impute_mean: column %d out of range [0,%d)", j, in.Cols())
		}
	}
	return t.Columns, nil
}

// ColumnMean averages the present values of column j.
func ColumnMean(in *ds.Table, j int) (float64, error) {
	vals := in.Present(j)
	if len(vals) == 0 {
		return 0, &ds.DivisionError{Op: "impute_mean", Column: j}
	}
	mean, err := stats.Mean(vals)
	if err != nil {
		return 0, fmt.Errorf("impute_mean: column %d: %w", j, err)
	}
	if math.IsInf(mean, 0) {
		// the sum overflowed; the values themselves are finite
		mean = scaledMean(vals)
	}
	return mean, nil
}

// scaledMean averages vals divided by their largest magnitude so the running
// sum cannot overflow, and clamps the result to [min, max].
func scaledMean(vals []float64) float64 {
	lo, hi := floats.Min(vals), floats.Max(vals)
	scale := math.Max(math.Abs(lo), math.Abs(hi))
	var sum float64
	for _, v := range vals {
		sum += v / scale
	}
	m := sum / float64(len(vals)) * scale
	return math.Min(math.Max(m, lo), hi)
}

func hasMissing(in *ds.Table, j int) bool {
	for i := 0; i < in.Rows(); i++ {
		if in.At(i, j).IsMissing() {
			return true
		}
	}
	return false
}
