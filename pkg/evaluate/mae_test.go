package evaluate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
)

func TestMAEOnlyImputedColumnCounts(t *testing.T) {
	imputed := ds.MustNew(nil, []ds.Row{ds.Floats(3, 4)})
	complete := ds.MustNew(nil, []ds.Row{ds.Floats(3, 5)})
	res, err := Compare(imputed, complete)
	require.NoError(t, err)
	// column 0 matches and contributes 0 to the sum over 2 cells
	assert.Equal(t, 2, res.Compared)
	assert.InDelta(t, 0.5, res.MAE, 1e-12)
}

func TestMAESingleCell(t *testing.T) {
	mae, err := MAE(ds.MustNew(nil, []ds.Row{ds.Floats(4)}), ds.MustNew(nil, []ds.Row{ds.Floats(5)}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, mae)
}

func TestMAEIdentity(t *testing.T) {
	tb := ds.MustNew(nil, []ds.Row{ds.Floats(1.5, -2), ds.Floats(0, 1e6)})
	mae, err := MAE(tb, tb)
	require.NoError(t, err)
	assert.Zero(t, mae)
}

func TestMAESkipsUnfilled(t *testing.T) {
	imputed := ds.MustNew(nil, []ds.Row{
		{ds.Value(1), ds.Missing()},
		ds.Floats(2, 10),
	})
	complete := ds.MustNew(nil, []ds.Row{ds.Floats(1, 1000), ds.Floats(4, 13)})
	res, err := Compare(imputed, complete)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Compared)
	assert.Equal(t, 1, res.Unfilled)
	assert.InDelta(t, 5.0/3.0, res.MAE, 1e-12)
}

func TestMAENothingToCompare(t *testing.T) {
	imputed := ds.MustNew(nil, []ds.Row{{ds.Missing(), ds.Missing()}})
	complete := ds.MustNew(nil, []ds.Row{ds.Floats(1, 2)})
	res, err := Compare(imputed, complete)
	var de *ds.DivisionError
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.ErrorIs(t, err, ds.ErrUndefined)
	assert.Equal(t, 2, res.Unfilled)
}

func TestMAEShapeMismatch(t *testing.T) {
	a := ds.MustNew(nil, []ds.Row{ds.Floats(1, 2)})
	b := ds.MustNew(nil, []ds.Row{ds.Floats(1, 2, 3)})
	_, err := MAE(a, b)
	assert.ErrorIs(t, err, ds.ErrShape)
}

func TestMAEIncompleteReference(t *testing.T) {
	a := ds.MustNew(nil, []ds.Row{ds.Floats(1, 2)})
	b := ds.MustNew(nil, []ds.Row{{ds.Value(1), ds.Missing()}})
	_, err := MAE(a, b)
	assert.ErrorIs(t, err, ErrIncompleteReference)
}
