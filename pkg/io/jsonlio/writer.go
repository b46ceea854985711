package jsonlio

import (
	"encoding/json"
	"io"
	"strconv"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
	iox "github.com/wdm0006/hotdeck/pkg/io/ioutils"
)

// WriteAll writes one JSON object per row, keys in column order and null for
// missing cells.
func WriteAll(path string, t *ds.Table) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, t); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func Write(w io.Writer, t *ds.Table) error {
	keys := make([][]byte, t.Cols())
	for j, n := range t.Names() {
		k, err := json.Marshal(n)
		if err != nil {
			return err
		}
		keys[j] = k
	}
	var buf []byte
	for i := 0; i < t.Rows(); i++ {
		buf = append(buf[:0], '{')
		for j := range keys {
			if j > 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, keys[j]...)
			buf = append(buf, ':')
			if v, ok := t.At(i, j).Float(); ok {
				buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
			} else {
				buf = append(buf, "null"...)
			}
		}
		buf = append(buf, '}', '\n')
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
