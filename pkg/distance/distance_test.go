package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
)

func TestBetween(t *testing.T) {
	cases := []struct {
		name string
		a, b ds.Row
		want float64
	}{
		{"Complete", ds.Floats(1, 2, 3), ds.Floats(4, 0, 3), 5},
		{"QueryMissing", ds.Row{ds.Value(3), ds.Missing()}, ds.Floats(1, 2), 3},
		{"BothMissing", ds.Row{ds.Missing(), ds.Value(1)}, ds.Row{ds.Missing(), ds.Value(1)}, 1},
		{"AllMissing", ds.Row{ds.Missing(), ds.Missing()}, ds.Floats(5, 5), 2},
		{"Negative", ds.Floats(-1.5), ds.Floats(1.5), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Between(tc.a, tc.b), 1e-12)
		})
	}
}

func TestSymmetric(t *testing.T) {
	rows := []ds.Row{
		ds.Floats(1, 2, 3),
		{ds.Value(0.1), ds.Missing(), ds.Value(-7)},
		{ds.Missing(), ds.Missing(), ds.Value(2.5)},
		ds.Floats(1e9, -1e-9, 0),
	}
	for _, a := range rows {
		for _, b := range rows {
			assert.Equal(t, Between(a, b), Between(b, a))
		}
	}
}

func TestSelfDistanceZeroWhenComplete(t *testing.T) {
	a := ds.Floats(3.25, -1, 8)
	assert.Zero(t, Between(a, a))

	partial := ds.Row{ds.Value(1), ds.Missing()}
	assert.Equal(t, MissingPenalty, Between(partial, partial))
}

func TestManhattanReusesBuffers(t *testing.T) {
	var m Manhattan
	require.Equal(t, 4.0, m.Distance(ds.Floats(1, 1), ds.Floats(3, 3)))
	require.Equal(t, 1.0, m.Distance(ds.Row{ds.Missing()}, ds.Floats(3)))
	require.Equal(t, 0.0, m.Distance(ds.Floats(2, 2, 2), ds.Floats(2, 2, 2)))
}

func TestLengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { Between(ds.Floats(1), ds.Floats(1, 2)) })
}
