// Package golearn converts between hotdeck tables and
// github.com/sjwhitworth/golearn/base DenseInstances.
//
// golearn has no missing marker for float attributes; missing cells travel as
// NaN and are mapped back to the missing sentinel on the way in.
package golearn

import (
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
)

// ToDenseInstances converts a Table into golearn DenseInstances with one
// FloatAttribute per column. When classCol is in range that attribute is
// registered as the class attribute.
func ToDenseInstances(t *ds.Table, classCol int) (*base.DenseInstances, error) {
	names := t.Names()
	attrs := make([]base.Attribute, len(names))
	for i, n := range names {
		attrs[i] = base.NewFloatAttribute(n)
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(t.Rows()); err != nil {
		return nil, err
	}
	for r := 0; r < t.Rows(); r++ {
		for c := range specs {
			v, ok := t.At(r, c).Float()
			if !ok {
				v = math.NaN()
			}
			inst.Set(specs[c], r, base.PackFloatToBytes(v))
		}
	}
	if classCol >= 0 && classCol < len(attrs) {
		if err := inst.AddClassAttribute(attrs[classCol]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FromDenseInstances converts golearn DenseInstances into a Table. Only float
// attributes are supported.
func FromDenseInstances(inst *base.DenseInstances) (*ds.Table, error) {
	attrs := inst.AllAttributes()
	names := make([]string, len(attrs))
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		if _, ok := a.(*base.FloatAttribute); !ok {
			return nil, fmt.Errorf("golearn: attribute %q is not numeric", a.GetName())
		}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		names[i] = a.GetName()
		specs[i] = spec
	}
	_, nrows := inst.Size()
	rows := make([]ds.Row, nrows)
	for r := range rows {
		row := make(ds.Row, len(specs))
		for c, spec := range specs {
			row[c] = ds.Value(base.UnpackBytesToFloat(inst.Get(spec, r)))
		}
		rows[r] = row
	}
	return ds.New(names, rows)
}
