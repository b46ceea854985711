package impute

import (
	"context"
	"math"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
	"github.com/wdm0006/hotdeck/pkg/distance"
)

// HotDeck fills the missing cells of each incomplete row with the values of
// its nearest complete row (the donor). Distances use distance.Between; on
// equal distances the donor with the lower row index wins. Rows for which the
// table holds no complete donor are left with their missing cells in place.
type HotDeck struct{}

func (t *HotDeck) Name() string { return "hotdeck" }

func (t *HotDeck) Apply(ctx context.Context, in *ds.Table) (*ds.Table, error) {
	rows := in.Data()
	donors := completeRows(rows)
	b := in.ToBuilder()
	var m distance.Manhattan
	for i, row := range rows {
		if row.Complete() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, ok := nearestDonor(&m, rows, donors, i)
		if !ok {
			continue
		}
		for k, c := range row {
			if c.IsMissing() {
				v, _ := rows[d][k].Float()
				b.Set(i, k, v)
			}
		}
	}
	return b.Build(), nil
}

// Donor returns the row index that HotDeck would copy from for row i, or
// false when row i is complete or no complete row exists.
func Donor(in *ds.Table, i int) (int, bool) {
	rows := in.Data()
	if rows[i].Complete() {
		return 0, false
	}
	var m distance.Manhattan
	return nearestDonor(&m, rows, completeRows(rows), i)
}

func completeRows(rows []ds.Row) []int {
	var idx []int
	for i, r := range rows {
		if r.Complete() {
			idx = append(idx, i)
		}
	}
	return idx
}

// nearestDonor scans donors in ascending index order; strict less-than keeps
// the earliest row on ties. The first donor is always taken, so a distance
// that overflows to +Inf still yields a donor.
func nearestDonor(m *distance.Manhattan, rows []ds.Row, donors []int, i int) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for _, j := range donors {
		if j == i {
			continue
		}
		if d := m.Distance(rows[i], rows[j]); best < 0 || d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, best >= 0
}
