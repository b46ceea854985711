// Package distance measures dissimilarity between rows that may contain
// missing cells.
//
// The measure is the Manhattan (L1) distance over coordinates present in both
// rows, plus MissingPenalty for every coordinate missing on either side. With
// missing data it is not a true metric: the triangle inequality does not hold
// in general.
package distance

import (
	"gonum.org/v1/gonum/floats"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
)

// MissingPenalty is added for each coordinate where either row is missing.
const MissingPenalty = 1.0

// Between returns the distance between a and b. It panics if the rows differ
// in length.
func Between(a, b ds.Row) float64 {
	var m Manhattan
	return m.Distance(a, b)
}

// Manhattan computes Between with reusable scratch space. The zero value is
// ready to use; it is not safe for concurrent use.
type Manhattan struct {
	xs, ys []float64
}

func (m *Manhattan) Distance(a, b ds.Row) float64 {
	if len(a) != len(b) {
		panic("distance: row lengths do not match")
	}
	m.xs, m.ys = m.xs[:0], m.ys[:0]
	var penalty float64
	for i := range a {
		x, okx := a[i].Float()
		y, oky := b[i].Float()
		if okx && oky {
			m.xs = append(m.xs, x)
			m.ys = append(m.ys, y)
			continue
		}
		penalty += MissingPenalty
	}
	if len(m.xs) == 0 {
		return penalty
	}
	return floats.Distance(m.xs, m.ys, 1) + penalty
}
