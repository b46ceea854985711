package csvio

import (
	"bytes"
	"path/filepath"
	"testing"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
)

func TestWriteRendersMissingAsNaN(t *testing.T) {
	tb := ds.MustNew([]string{"a", "b"}, []ds.Row{
		{ds.Value(1.5), ds.Missing()},
		ds.Floats(3, 4),
	})
	var buf bytes.Buffer
	if err := Write(&buf, tb, WriterOptions{}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "1.5,NaN\n3,4\n" {
		t.Fatalf("got %q", got)
	}
	buf.Reset()
	if err := Write(&buf, tb, WriterOptions{Header: true}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a,b\n1.5,NaN\n3,4\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteReadBackGzip(t *testing.T) {
	tb := ds.MustNew([]string{"a", "b"}, []ds.Row{
		{ds.Value(-0.25), ds.Missing()},
		ds.Floats(1e-9, 12345678.5),
	})
	p := filepath.Join(t.TempDir(), "out.csv.gz")
	if err := WriteAll(p, tb, WriterOptions{Header: true}); err != nil {
		t.Fatal(err)
	}
	back, err := ReadFile(p, ReaderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(tb) {
		t.Fatal("gzip round trip changed the table")
	}
}
