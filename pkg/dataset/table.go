package dataset

import (
	"fmt"
	"math"
	"strconv"
)

// Cell is a single numeric observation that may be absent.
type Cell struct {
	v  float64
	ok bool
}

// Value returns a present cell. NaN is not a valid observation and maps to Missing.
func Value(v float64) Cell {
	if math.IsNaN(v) {
		return Cell{}
	}
	return Cell{v: v, ok: true}
}

// Missing returns the missing sentinel.
func Missing() Cell { return Cell{} }

func (c Cell) Float() (float64, bool) { return c.v, c.ok }
func (c Cell) IsMissing() bool        { return !c.ok }

func (c Cell) String() string {
	if !c.ok {
		return "NaN"
	}
	return strconv.FormatFloat(c.v, 'g', -1, 64)
}

// Row is an ordered sequence of cells.
type Row []Cell

// Complete reports whether the row has no missing cells.
func (r Row) Complete() bool {
	for _, c := range r {
		if !c.ok {
			return false
		}
	}
	return true
}

func (r Row) MissingCount() int {
	var n int
	for _, c := range r {
		if !c.ok {
			n++
		}
	}
	return n
}

// Floats builds a row from raw values, mapping NaN to Missing.
func Floats(vs ...float64) Row {
	r := make(Row, len(vs))
	for i, v := range vs {
		r[i] = Value(v)
	}
	return r
}

// Table is a rectangular, non-empty numeric table. It is read-only once
// constructed; use ToBuilder to derive a modified copy.
type Table struct {
	names []string
	rows  []Row
	ncols int
}

// New validates rows and wraps them in a Table. The rows are copied. When names
// is nil, columns are named col_0..col_n; given names must be unique.
func New(names []string, rows []Row) (*Table, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	ncols := len(rows[0])
	for i, r := range rows {
		if len(r) != ncols {
			return nil, &ShapeError{What: "row " + strconv.Itoa(i) + " cells", Want: ncols, Got: len(r)}
		}
	}
	if names == nil {
		names = make([]string, ncols)
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
	} else if len(names) != ncols {
		return nil, &ShapeError{What: "column names", Want: ncols, Got: len(names)}
	}
	seen := make(map[string]int, ncols)
	for j, n := range names {
		if k, ok := seen[n]; ok {
			return nil, fmt.Errorf("%w: %q at columns %d and %d", ErrDuplicateName, n, k, j)
		}
		seen[n] = j
	}
	t := &Table{names: append([]string(nil), names...), rows: make([]Row, len(rows)), ncols: ncols}
	for i, r := range rows {
		t.rows[i] = append(Row(nil), r...)
	}
	return t, nil
}

// MustNew is New for fixtures and tests; it panics on error.
func MustNew(names []string, rows []Row) *Table {
	t, err := New(names, rows)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Rows() int              { return len(t.rows) }
func (t *Table) Cols() int              { return t.ncols }
func (t *Table) At(i, j int) Cell       { return t.rows[i][j] }
func (t *Table) Row(i int) Row          { return append(Row(nil), t.rows[i]...) }
func (t *Table) Names() []string        { return append([]string(nil), t.names...) }
func (t *Table) RowComplete(i int) bool { return t.rows[i].Complete() }

// Data returns a deep copy of all rows.
func (t *Table) Data() []Row {
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = append(Row(nil), r...)
	}
	return out
}

// Present returns the present values of column j in row order.
func (t *Table) Present(j int) []float64 {
	vals := make([]float64, 0, len(t.rows))
	for _, r := range t.rows {
		if r[j].ok {
			vals = append(vals, r[j].v)
		}
	}
	return vals
}

// Complete reports whether no cell in the table is missing.
func (t *Table) Complete() bool {
	for _, r := range t.rows {
		if !r.Complete() {
			return false
		}
	}
	return true
}

func (t *Table) MissingCount() int {
	var n int
	for _, r := range t.rows {
		n += r.MissingCount()
	}
	return n
}

// Equal compares shape and cells; column names are ignored.
func (t *Table) Equal(o *Table) bool {
	if t.Rows() != o.Rows() || t.Cols() != o.Cols() {
		return false
	}
	for i, r := range t.rows {
		for j, c := range r {
			if c != o.rows[i][j] {
				return false
			}
		}
	}
	return true
}

// CheckSameShape returns a *ShapeError when o does not match t's dimensions.
func (t *Table) CheckSameShape(o *Table) error {
	if t.Rows() != o.Rows() {
		return &ShapeError{What: "rows", Want: t.Rows(), Got: o.Rows()}
	}
	if t.Cols() != o.Cols() {
		return &ShapeError{What: "columns", Want: t.Cols(), Got: o.Cols()}
	}
	return nil
}

// Builder fills cells of a private copy of a Table.
type Builder struct {
	t *Table
}

// ToBuilder deep-copies t into a Builder; t itself is never modified.
func (t *Table) ToBuilder() *Builder {
	return &Builder{t: &Table{names: t.Names(), rows: t.Data(), ncols: t.ncols}}
}

// Set stores a present value. NaN stores the missing sentinel.
func (b *Builder) Set(i, j int, v float64) { b.t.rows[i][j] = Value(v) }

// Build returns the finished Table. The Builder must not be used afterwards.
func (b *Builder) Build() *Table {
	t := b.t
	b.t = nil
	return t
}
