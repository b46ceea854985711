package dataset

import (
	"errors"
	"math"
	"testing"
)

func TestNewRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		names []string
		rows  []Row
		err   error
	}{
		{"NoRows", nil, nil, ErrEmpty},
		{"NoCols", nil, []Row{{}}, ErrEmpty},
		{"Ragged", nil, []Row{Floats(1, 2), Floats(3)}, ErrShape},
		{"NameWidth", []string{"a"}, []Row{Floats(1, 2)}, ErrShape},
		{"DuplicateName", []string{"a", "b", "a"}, []Row{Floats(1, 2, 3)}, ErrDuplicateName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.names, tc.rows)
			if !errors.Is(err, tc.err) {
				t.Fatalf("New error = %v; want %v", err, tc.err)
			}
		})
	}
}

func TestRaggedRowReportsWidths(t *testing.T) {
	_, err := New(nil, []Row{Floats(1, 2), Floats(3, 4), Floats(5, 6, 7)})
	var se *ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ShapeError, got %v", err)
	}
	if se.Want != 2 || se.Got != 3 {
		t.Fatalf("shape error want/got = %d/%d", se.Want, se.Got)
	}
}

func TestValueNeverStoresNaN(t *testing.T) {
	c := Value(math.NaN())
	if !c.IsMissing() {
		t.Fatal("NaN must map to missing")
	}
	if _, ok := c.Float(); ok {
		t.Fatal("missing cell reported as present")
	}
	if c.String() != "NaN" {
		t.Fatalf("missing renders as %q", c.String())
	}
}

func TestDefaultNames(t *testing.T) {
	tb := MustNew(nil, []Row{Floats(1, 2)})
	names := tb.Names()
	if names[0] != "col_0" || names[1] != "col_1" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestTableIsolatedFromCallerSlices(t *testing.T) {
	rows := []Row{Floats(1, 2)}
	tb := MustNew(nil, rows)
	rows[0][0] = Value(99)
	r := tb.Row(0)
	r[1] = Missing()
	if v, _ := tb.At(0, 0).Float(); v != 1 {
		t.Fatalf("table aliased constructor input, got %v", v)
	}
	if tb.At(0, 1).IsMissing() {
		t.Fatal("Row returned an alias of internal storage")
	}
}

func TestBuilderLeavesSourceUntouched(t *testing.T) {
	src := MustNew(nil, []Row{{Value(1), Missing()}})
	b := src.ToBuilder()
	b.Set(0, 1, 7)
	out := b.Build()
	if !src.At(0, 1).IsMissing() {
		t.Fatal("builder mutated source table")
	}
	if v, ok := out.At(0, 1).Float(); !ok || v != 7 {
		t.Fatalf("builder set failed: %v %v", v, ok)
	}
	if src.Equal(out) {
		t.Fatal("tables should differ")
	}
}

func TestPresentAndCounts(t *testing.T) {
	tb := MustNew(nil, []Row{
		Floats(1, 2),
		{Value(3), Missing()},
		Floats(5, 6),
	})
	p := tb.Present(1)
	if len(p) != 2 || p[0] != 2 || p[1] != 6 {
		t.Fatalf("Present(1) = %v", p)
	}
	if tb.MissingCount() != 1 || tb.Complete() {
		t.Fatalf("missing=%d complete=%v", tb.MissingCount(), tb.Complete())
	}
	if tb.RowComplete(1) || !tb.RowComplete(2) {
		t.Fatal("RowComplete mismatch")
	}
}

func TestCheckSameShape(t *testing.T) {
	a := MustNew(nil, []Row{Floats(1, 2)})
	b := MustNew(nil, []Row{Floats(1, 2), Floats(3, 4)})
	c := MustNew(nil, []Row{Floats(1, 2, 3)})
	if err := a.CheckSameShape(a); err != nil {
		t.Fatal(err)
	}
	if err := a.CheckSameShape(b); !errors.Is(err, ErrShape) {
		t.Fatalf("row mismatch not detected: %v", err)
	}
	if err := a.CheckSameShape(c); !errors.Is(err, ErrShape) {
		t.Fatalf("column mismatch not detected: %v", err)
	}
}

func TestDivisionErrorMatchesUndefined(t *testing.T) {
	var err error = &DivisionError{Op: "impute_mean", Column: 2}
	if !errors.Is(err, ErrUndefined) {
		t.Fatal("DivisionError should match ErrUndefined")
	}
	if err.Error() == "" {
		t.Fatal("empty message")
	}
}
