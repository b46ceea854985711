package csvio

import (
	"encoding/csv"
	"io"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
	iox "github.com/wdm0006/hotdeck/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
	Header    bool // write column names first
}

// WriteAll writes a Table to a CSV file ("-" for stdout, .gz compressed).
// Missing cells are written as NaN.
func WriteAll(path string, t *ds.Table, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, t, opt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func Write(out io.Writer, t *ds.Table, opt WriterOptions) error {
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}
	if opt.Header {
		if err := w.Write(t.Names()); err != nil {
			return err
		}
	}
	rec := make([]string, t.Cols())
	for i := 0; i < t.Rows(); i++ {
		for j := range rec {
			rec[j] = t.At(i, j).String()
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
