package profile

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
)

// NumStats summarises the present values of one column. Min, Max and Mean
// are zero when Count is zero.
type NumStats struct {
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
}

type ColumnProfile struct {
	Name string   `json:"name"`
	Num  NumStats `json:"num"`
}

// Profile describes a whole table.
type Profile struct {
	Rows         int             `json:"rows"`
	CompleteRows int             `json:"complete_rows"`
	MissingCells int             `json:"missing_cells"`
	Columns      []ColumnProfile `json:"columns"`
}

// Of computes column statistics for t.
func Of(t *ds.Table) Profile {
	p := Profile{Rows: t.Rows(), MissingCells: t.MissingCount(), Columns: make([]ColumnProfile, t.Cols())}
	for i := 0; i < t.Rows(); i++ {
		if t.RowComplete(i) {
			p.CompleteRows++
		}
	}
	names := t.Names()
	for j := range p.Columns {
		vals := t.Present(j)
		st := NumStats{Count: len(vals), Missing: t.Rows() - len(vals)}
		if len(vals) > 0 {
			st.Min = floats.Min(vals)
			st.Max = floats.Max(vals)
			st.Mean = floats.Sum(vals) / float64(len(vals))
		}
		p.Columns[j] = ColumnProfile{Name: names[j], Num: st}
	}
	return p
}

// HasDonors reports whether hot-deck imputation can fill anything.
func (p Profile) HasDonors() bool { return p.CompleteRows > 0 }

func (p Profile) ReportText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profile Summary: rows=%d complete_rows=%d missing_cells=%d\n", p.Rows, p.CompleteRows, p.MissingCells)
	for _, cp := range p.Columns {
		if cp.Num.Count == 0 {
			fmt.Fprintf(&b, "- %s: count=0 missing=%d (no present values)\n", cp.Name, cp.Num.Missing)
			continue
		}
		fmt.Fprintf(&b, "- %s: count=%d missing=%d min=%.6g max=%.6g mean=%.6g\n",
			cp.Name, cp.Num.Count, cp.Num.Missing, cp.Num.Min, cp.Num.Max, cp.Num.Mean)
	}
	return b.String()
}
