package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
	iox "github.com/wdm0006/hotdeck/pkg/io/ioutils"
)

// DefaultMissingToken marks an absent value in input files.
const DefaultMissingToken = "?"

// ErrNotFinite rejects infinite values, which would poison sums and distances.
var ErrNotFinite = errors.New("csvio: value is not finite")

type ReaderOptions struct {
	NoHeader     bool   // first line is data, not a header
	Delimiter    rune   // 0 = sniff, default ','
	MissingToken string // default "?"
}

// ParseError reports a token that is neither the missing token nor a number.
type ParseError struct {
	Line   int // 1-based line in the input
	Column int // 0-based field index
	Token  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csvio: line %d field %d: cannot parse %q: %v", e.Line, e.Column, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type Reader struct {
	r   *csv.Reader
	opt ReaderOptions
}

// Open opens a CSV file (or "-" for stdin), possibly gzip compressed. The
// caller closes the returned io.Closer.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	br := bufio.NewReader(rc)
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(br)
	}
	return NewReaderFrom(br, opt), rc, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader (stdin, pipe).
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	rr := csv.NewReader(r)
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	if opt.MissingToken == "" {
		opt.MissingToken = DefaultMissingToken
	}
	// ragged rows are reported as *dataset.ShapeError, not csv.ErrFieldCount
	rr.FieldsPerRecord = -1
	rr.ReuseRecord = true
	return &Reader{r: rr, opt: opt}
}

// ReadFile loads a whole CSV file into a Table.
func ReadFile(path string, opt ReaderOptions) (*ds.Table, error) {
	r, c, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()
	t, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadAll parses the remaining input. The header line, when present, supplies
// column names only.
func (r *Reader) ReadAll() (*ds.Table, error) {
	var names []string
	if !r.opt.NoHeader {
		rec, err := r.r.Read()
		if err == io.EOF {
			return nil, ds.ErrEmpty
		}
		if err != nil {
			return nil, err
		}
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.TrimSpace(strings.ToValidUTF8(rec[i], "?"))
		}
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\ufeff")
		}
	}
	var rows []ds.Row
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := r.parseRecord(rec)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			line, _ := r.r.FieldPos(0)
			return nil, &ds.ShapeError{What: "line " + strconv.Itoa(line) + " fields", Want: len(rows[0]), Got: len(row)}
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 && names != nil && len(names) != len(rows[0]) {
		return nil, &ds.ShapeError{What: "header fields", Want: len(rows[0]), Got: len(names)}
	}
	return ds.New(names, rows)
}

func (r *Reader) parseRecord(rec []string) (ds.Row, error) {
	row := make(ds.Row, len(rec))
	for i, tok := range rec {
		tok = strings.TrimSpace(tok)
		if tok == r.opt.MissingToken {
			row[i] = ds.Missing()
			continue
		}
		// "NaN" parses to NaN and becomes Missing, so written output reads back
		x, err := strconv.ParseFloat(tok, 64)
		if err == nil && math.IsInf(x, 0) {
			err = ErrNotFinite
		}
		if err != nil {
			line, _ := r.r.FieldPos(i)
			return nil, &ParseError{Line: line, Column: i, Token: tok, Err: err}
		}
		row[i] = ds.Value(x)
	}
	return row, nil
}

func sniffDelimiter(br *bufio.Reader) rune {
	sample, _ := br.Peek(4096)
	if i := strings.IndexByte(string(sample), '\n'); i >= 0 {
		sample = sample[:i]
	}
	best, bestCount := ',', 0
	for _, c := range []rune{',', '\t', ';', '|'} {
		if n := strings.Count(string(sample), string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}
