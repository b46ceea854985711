package main

import (
	"path/filepath"
	"strings"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
	csvio "github.com/wdm0006/hotdeck/pkg/io/csvio"
	jsonlio "github.com/wdm0006/hotdeck/pkg/io/jsonlio"
	"github.com/wdm0006/hotdeck/pkg/io/parquetio"
)

// readTable picks a reader from the file extension, ignoring a trailing .gz.
// Anything that is not jsonl or parquet is read as delimited text.
func (c *Config) readTable(path string) (*ds.Table, error) {
	switch tableExt(path) {
	case ".jsonl", ".ndjson":
		return jsonlio.ReadFile(path)
	case ".parquet":
		return parquetio.ReadAll(path)
	default:
		return csvio.ReadFile(path, csvio.ReaderOptions{
			NoHeader:     c.Input.NoHeader,
			Delimiter:    delimiter(c.Input.Delimiter),
			MissingToken: c.Input.MissingToken,
		})
	}
}

func (c *Config) writeTable(path string, t *ds.Table) error {
	switch c.Output.Format {
	case "jsonl":
		return jsonlio.WriteAll(path, t)
	case "parquet":
		return parquetio.WriteAll(path, t)
	default:
		return csvio.WriteAll(path, t, csvio.WriterOptions{
			Delimiter: delimiter(c.Output.Delimiter),
			Header:    c.Output.Header,
		})
	}
}

func tableExt(path string) string {
	p := strings.TrimSuffix(strings.ToLower(path), ".gz")
	return filepath.Ext(p)
}
