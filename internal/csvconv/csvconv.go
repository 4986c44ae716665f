// Package csvconv converts a date column of a CSV file between the Gregorian
// and Japanese era calendars.
//
// Spreadsheets exported on Japanese Windows are usually Shift_JIS encoded and
// older Unix systems produce EUC-JP; input is decoded from and output encoded
// to the selected encoding.
package csvconv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"

	wareki "github.com/rabitt1ove/jp-wareki"
)

// Direction selects which way a column is converted.
type Direction string

const (
	// ToWareki converts Gregorian dates (2026-02-23, 2026/2/23) to era dates.
	ToWareki Direction = "to"
	// FromWareki converts era dates (令和8年2月23日, R8.2.23) to YYYY-MM-DD.
	FromWareki Direction = "from"
)

// ParseDirection parses a --direction flag value.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(s)); d {
	case ToWareki, FromWareki:
		return d, nil
	}
	return "", fmt.Errorf("invalid direction %q: must be %q or %q", s, ToWareki, FromWareki)
}

// Encoding is the character encoding of the CSV data.
type Encoding string

const (
	UTF8     Encoding = "utf-8"
	ShiftJIS Encoding = "shift_jis"
	EUCJP    Encoding = "euc-jp"
)

// codecs maps the non-UTF-8 encodings to their transformers.
var codecs = map[Encoding]encoding.Encoding{
	ShiftJIS: japanese.ShiftJIS,
	EUCJP:    japanese.EUCJP,
}

// ParseEncoding parses an --encoding flag value. Common spellings of
// Shift_JIS ("sjis", "cp932", "shift-jis") and EUC-JP ("eucjp") are accepted.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "shift_jis", "shift-jis", "sjis", "cp932", "windows-31j":
		return ShiftJIS, nil
	case "euc-jp", "eucjp", "euc_jp":
		return EUCJP, nil
	}
	return "", fmt.Errorf("unsupported encoding %q", s)
}

// Options controls a conversion.
type Options struct {
	Column    int // 0-based index of the date column
	Direction Direction
	Encoding  Encoding
	Header    bool // first record is a header row
	Strict    bool // stop at the first value that fails to convert
}

// Stats summarizes a conversion.
type Stats struct {
	Records   int `json:"records"`   // data records read (header excluded)
	Converted int `json:"converted"` // values converted
	Skipped   int `json:"skipped"`   // empty values passed through
	Failed    int `json:"failed"`    // values that could not be converted
}

// RowError reports a value that could not be converted.
type RowError struct {
	Record int // 1-based, counting the header
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("record %d: %q: %v", e.Record, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ErrMissingColumn is wrapped by a RowError when a record is too short.
var ErrMissingColumn = errors.New("missing date column")

// resultHeader names the appended column.
var resultHeader = map[Direction]string{
	ToWareki:   "和暦",
	FromWareki: "西暦",
}

// Convert reads CSV records from r, converts the date in opts.Column and
// writes each record with the result appended to w. Values that fail to
// convert leave the result cell empty and are counted in Stats.Failed;
// with opts.Strict the first failure is returned as a *RowError instead.
func Convert(r io.Reader, w io.Writer, cal *wareki.Calendar, opts Options) (Stats, error) {
	var stats Stats
	if opts.Column < 0 {
		return stats, fmt.Errorf("invalid column %d", opts.Column)
	}
	convert, err := converterFor(cal, opts.Direction)
	if err != nil {
		return stats, err
	}

	codec, ok := codecs[opts.Encoding]
	if !ok {
		return convertRecords(r, w, convert, opts)
	}

	// Close flushes the encoder's buffered tail.
	tw := transform.NewWriter(w, codec.NewEncoder())
	stats, err = convertRecords(transform.NewReader(r, codec.NewDecoder()), tw, convert, opts)
	if cerr := tw.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("flushing %s output: %w", opts.Encoding, cerr)
	}
	return stats, err
}

func convertRecords(r io.Reader, w io.Writer, convert converter, opts Options) (Stats, error) {
	var stats Stats
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	writer := csv.NewWriter(w)

	recordNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		recordNum++
		if err != nil {
			writer.Flush()
			return stats, fmt.Errorf("record %d: %w", recordNum, err)
		}

		if recordNum == 1 && opts.Header {
			if err := writer.Write(append(record, resultHeader[opts.Direction])); err != nil {
				return stats, err
			}
			continue
		}
		stats.Records++

		var result string
		switch {
		case opts.Column >= len(record):
			err = &RowError{Record: recordNum, Err: ErrMissingColumn}
		case strings.TrimSpace(record[opts.Column]) == "":
			stats.Skipped++
		default:
			value := record[opts.Column]
			if result, err = convert(value); err != nil {
				err = &RowError{Record: recordNum, Value: value, Err: err}
			}
		}
		if err != nil {
			if opts.Strict {
				writer.Flush()
				return stats, err
			}
			stats.Failed++
		} else if result != "" {
			stats.Converted++
		}

		if err := writer.Write(append(record, result)); err != nil {
			return stats, err
		}
	}

	writer.Flush()
	return stats, writer.Error()
}

type converter func(string) (string, error)

func converterFor(cal *wareki.Calendar, dir Direction) (converter, error) {
	switch dir {
	case ToWareki:
		return func(s string) (string, error) {
			y, m, d, err := ParseGregorian(s)
			if err != nil {
				return "", err
			}
			wd, err := cal.ToWareki(y, m, d)
			if err != nil {
				return "", err
			}
			return wd.String(), nil
		}, nil
	case FromWareki:
		return func(s string) (string, error) {
			wd, err := cal.Parse(s)
			if err != nil {
				return "", err
			}
			return cal.FromWareki(wd.Era, wd.Year, wd.Month, wd.Day)
		}, nil
	}
	return nil, fmt.Errorf("invalid direction %q", dir)
}

var gregorianPattern = regexp.MustCompile(`^([0-9]{1,4})[-/.]([0-9]{1,2})[-/.]([0-9]{1,2})$`)

// ErrNotGregorian is returned for a value that is not a Gregorian date.
var ErrNotGregorian = errors.New("not a Gregorian date (want YYYY-MM-DD or YYYY/M/D)")

// ParseGregorian splits a Gregorian date written with '-', '/' or '.'
// separators. Full-width digits are accepted. Range checks are left to the
// calendar.
func ParseGregorian(s string) (int, time.Month, int, error) {
	m := gregorianPattern.FindStringSubmatch(strings.TrimSpace(width.Fold.String(s)))
	if m == nil {
		return 0, 0, 0, ErrNotGregorian
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	return y, time.Month(mo), d, nil
}
