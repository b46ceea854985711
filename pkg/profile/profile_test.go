package profile

import (
	"encoding/json"
	"strings"
	"testing"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
)

func TestOf(t *testing.T) {
	tb := ds.MustNew([]string{"a", "b"}, []ds.Row{
		ds.Floats(1, 10),
		{ds.Value(3), ds.Missing()},
		{ds.Value(-1), ds.Missing()},
	})
	p := Of(tb)
	if p.Rows != 3 || p.CompleteRows != 1 || p.MissingCells != 2 {
		t.Fatalf("table stats %+v", p)
	}
	a := p.Columns[0].Num
	if a.Count != 3 || a.Min != -1 || a.Max != 3 || a.Mean != 1 {
		t.Fatalf("column a stats %+v", a)
	}
	b := p.Columns[1].Num
	if b.Count != 1 || b.Missing != 2 || b.Mean != 10 {
		t.Fatalf("column b stats %+v", b)
	}
	if !p.HasDonors() {
		t.Fatal("row 0 is a donor")
	}
}

func TestReports(t *testing.T) {
	tb := ds.MustNew([]string{"x", "empty"}, []ds.Row{{ds.Value(2), ds.Missing()}})
	p := Of(tb)
	txt := p.ReportText()
	if !strings.Contains(txt, "- x: count=1 missing=0") || !strings.Contains(txt, "no present values") {
		t.Fatalf("unexpected report:\n%s", txt)
	}
	if p.HasDonors() {
		t.Fatal("no complete rows")
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"complete_rows":0`) {
		t.Fatalf("json %s", b)
	}
}
