package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"

	parquet "github.com/segmentio/parquet-go"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
)

// ReadAll loads a flat Parquet file of numeric columns. Null values become
// missing cells.
func ReadAll(path string) (*ds.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("parquet open %s: %w", path, err)
	}
	fields := pf.Schema().Fields()
	names := make([]string, len(fields))
	for i, fd := range fields {
		if !fd.Leaf() {
			return nil, fmt.Errorf("parquet %s: column %q is nested", path, fd.Name())
		}
		names[i] = fd.Name()
	}
	var rows []ds.Row
	for _, rg := range pf.RowGroups() {
		more, err := readGroup(rg, len(names))
		if err != nil {
			return nil, fmt.Errorf("parquet read %s: %w", path, err)
		}
		rows = append(rows, more...)
	}
	return ds.New(names, rows)
}

func readGroup(rg parquet.RowGroup, ncols int) ([]ds.Row, error) {
	rr := rg.Rows()
	defer func() { _ = rr.Close() }()
	var out []ds.Row
	buf := make([]parquet.Row, 256)
	for {
		n, err := rr.ReadRows(buf)
		for _, pr := range buf[:n] {
			row := make(ds.Row, ncols)
			for _, v := range pr {
				c := v.Column()
				if c < 0 || c >= ncols || v.IsNull() {
					continue
				}
				x, err := toFloat(v)
				if err != nil {
					return nil, err
				}
				row[c] = ds.Value(x)
			}
			out = append(out, row)
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func toFloat(v parquet.Value) (float64, error) {
	switch v.Kind() {
	case parquet.Double:
		return v.Double(), nil
	case parquet.Float:
		return float64(v.Float()), nil
	case parquet.Int32:
		return float64(v.Int32()), nil
	case parquet.Int64:
		return float64(v.Int64()), nil
	default:
		return 0, fmt.Errorf("column %d: unsupported kind %v", v.Column(), v.Kind())
	}
}
