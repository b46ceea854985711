package parquetio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
)

// ErrColumnName rejects names the parquet-go tag syntax cannot carry: commas,
// equals signs and surrounding whitespace.
var ErrColumnName = errors.New("parquetio: column name not representable in schema tag")

// parquetSchemaJSON maps every column to an OPTIONAL DOUBLE; null is missing.
func parquetSchemaJSON(names []string) (string, error) {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, n := range names {
		if strings.ContainsAny(n, ",=") || strings.TrimSpace(n) != n {
			return "", fmt.Errorf("%w: %q", ErrColumnName, n)
		}
		sc.Fields = append(sc.Fields, field{Tag: "name=" + n + ", type=DOUBLE, repetitiontype=OPTIONAL"})
	}
	b, err := json.Marshal(sc)
	return string(b), err
}

// WriteAll writes a Table to a Parquet file using parquet-go's JSONWriter.
func WriteAll(path string, t *ds.Table) (err error) {
	schema, err := parquetSchemaJSON(t.Names())
	if err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(schema, fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() {
		if serr := writer.WriteStop(); serr != nil && err == nil {
			err = fmt.Errorf("parquet write stop: %w", serr)
		}
		if cerr := fw.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	names := t.Names()
	for i := 0; i < t.Rows(); i++ {
		rec := make(map[string]float64, len(names))
		for j, n := range names {
			if v, ok := t.At(i, j).Float(); ok {
				rec[n] = v
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row %d: %w", i, err)
		}
	}
	return nil
}
