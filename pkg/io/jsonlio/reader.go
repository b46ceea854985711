package jsonlio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
	iox "github.com/wdm0006/hotdeck/pkg/io/ioutils"
)

// Reader decodes one JSON object per line. Keys are column names, values are
// numbers or null; a null or absent key is a missing cell. Column order is
// the key order of the first record.
type Reader struct {
	dec *json.Decoder
}

func NewReaderFrom(r io.Reader) *Reader {
	return &Reader{dec: json.NewDecoder(bufio.NewReader(r))}
}

// ReadFile loads a JSONL file ("-" for stdin, gzip detected).
func ReadFile(path string) (*ds.Table, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	t, err := NewReaderFrom(rc).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (r *Reader) ReadAll() (*ds.Table, error) {
	var (
		names []string
		index map[string]int
		rows  []ds.Row
	)
	for line := 1; ; line++ {
		var raw json.RawMessage
		if err := r.dec.Decode(&raw); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("jsonlio: record %d: %w", line, err)
		}
		if names == nil {
			keys, err := objectKeys(raw)
			if err != nil {
				return nil, fmt.Errorf("jsonlio: record %d: %w", line, err)
			}
			names = keys
			index = make(map[string]int, len(keys))
			for i, k := range keys {
				index[k] = i
			}
		}
		var m map[string]*float64
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("jsonlio: record %d: %w", line, err)
		}
		row := make(ds.Row, len(names))
		for k, v := range m {
			i, ok := index[k]
			if !ok {
				return nil, fmt.Errorf("jsonlio: record %d: unknown column %q: %w", line, k, ds.ErrShape)
			}
			if v != nil {
				row[i] = ds.Value(*v)
			}
		}
		rows = append(rows, row)
	}
	return ds.New(names, rows)
}

// objectKeys lists the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
