package csvconv

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/japanese"

	wareki "github.com/rabitt1ove/jp-wareki"
)

func convertString(t *testing.T, in string, opts Options) (string, Stats, error) {
	t.Helper()
	var out bytes.Buffer
	stats, err := Convert(strings.NewReader(in), &out, wareki.Default(), opts)
	return out.String(), stats, err
}

// --- parse helpers ---

func TestParseDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"to", ToWareki, false},
		{"TO", ToWareki, false},
		{"from", FromWareki, false},
		{"sideways", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, %v; want %q, wantErr=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestParseEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Encoding
		wantErr bool
	}{
		{"", UTF8, false},
		{"UTF-8", UTF8, false},
		{"utf8", UTF8, false},
		{"shift_jis", ShiftJIS, false},
		{"SJIS", ShiftJIS, false},
		{"cp932", ShiftJIS, false},
		{"EUC-JP", EUCJP, false},
		{"eucjp", EUCJP, false},
		{"latin1", "", true},
	}
	for _, tt := range tests {
		got, err := ParseEncoding(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseEncoding(%q) = %q, %v; want %q, wantErr=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestParseGregorian(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		year    int
		month   time.Month
		day     int
		wantErr bool
	}{
		{"2026-02-23", 2026, time.February, 23, false},
		{"2026/2/23", 2026, time.February, 23, false},
		{"1989.1.8", 1989, time.January, 8, false},
		{" 2024-02-29 ", 2024, time.February, 29, false},
		{"２０２６／２／２３", 2026, time.February, 23, false},
		{"2023-02-29", 2023, time.February, 29, false}, // range checked later
		{"20260223", 0, 0, 0, true},
		{"令和8年2月23日", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}
	for _, tt := range tests {
		y, m, d, err := ParseGregorian(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGregorian(%q) error = %v, wantErr = %v", tt.in, err, tt.wantErr)
			continue
		}
		if y != tt.year || m != tt.month || d != tt.day {
			t.Errorf("ParseGregorian(%q) = %d-%d-%d, want %d-%d-%d", tt.in, y, m, d, tt.year, tt.month, tt.day)
		}
	}
}

// --- Convert ---

func TestConvert_ToWareki(t *testing.T) {
	t.Parallel()

	in := "id,date\r\n1,2026-02-23\r\n2,1989/1/7\r\n3,2019/5/1\r\n"
	out, stats, err := convertString(t, in, Options{Column: 1, Direction: ToWareki, Header: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "id,date,和暦\n1,2026-02-23,令和8年2月23日\n2,1989/1/7,昭和64年1月7日\n3,2019/5/1,令和元年5月1日\n"
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}
	if stats != (Stats{Records: 3, Converted: 3}) {
		t.Errorf("stats = %+v", stats)
	}
}

func TestConvert_FromWareki(t *testing.T) {
	t.Parallel()

	in := "令和8年2月23日\nR6.2.29\nH1.1.8\n"
	out, stats, err := convertString(t, in, Options{Column: 0, Direction: FromWareki})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "令和8年2月23日,2026-02-23\nR6.2.29,2024-02-29\nH1.1.8,1989-01-08\n"
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}
	if stats.Converted != 3 || stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestConvert_FailuresLeaveEmptyCell(t *testing.T) {
	t.Parallel()

	in := "2023-02-29\n1868-01-24\nnot-a-date\n\n2026-02-23\nshort\n"
	out, stats, err := convertString(t, in, Options{Column: 0, Direction: ToWareki})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// encoding/csv skips blank lines entirely.
	want := "2023-02-29,\n1868-01-24,\nnot-a-date,\n2026-02-23,令和8年2月23日\nshort,\n"
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}
	if stats != (Stats{Records: 5, Converted: 1, Failed: 4}) {
		t.Errorf("stats = %+v", stats)
	}
}

func TestConvert_EmptyValueSkipped(t *testing.T) {
	t.Parallel()

	out, stats, err := convertString(t, "a,\nb,2026-02-23\n", Options{Column: 1, Direction: ToWareki})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a,,\nb,2026-02-23,令和8年2月23日\n" {
		t.Errorf("unexpected output: %q", out)
	}
	if stats != (Stats{Records: 2, Converted: 1, Skipped: 1}) {
		t.Errorf("stats = %+v", stats)
	}
}

func TestConvert_MissingColumn(t *testing.T) {
	t.Parallel()

	_, stats, err := convertString(t, "a,2026-02-23\nb\n", Options{Column: 1, Direction: ToWareki, Strict: true})
	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("error = %v, want *RowError", err)
	}
	if rowErr.Record != 2 || !errors.Is(err, ErrMissingColumn) {
		t.Errorf("rowErr = %+v", rowErr)
	}
	if stats.Converted != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestConvert_StrictStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	in := "date\n2026-02-23\n2023-02-29\n2024-02-29\n"
	out, stats, err := convertString(t, in, Options{Column: 0, Direction: ToWareki, Header: true, Strict: true})
	if !errors.Is(err, wareki.ErrInvalidArg) {
		t.Fatalf("error = %v, want ErrInvalidArg", err)
	}
	var rowErr *RowError
	if !errors.As(err, &rowErr) || rowErr.Record != 3 || rowErr.Value != "2023-02-29" {
		t.Errorf("rowErr = %+v", rowErr)
	}
	if !strings.Contains(err.Error(), "record 3") {
		t.Errorf("error should mention the record, got: %v", err)
	}
	if out != "date,和暦\n2026-02-23,令和8年2月23日\n" {
		t.Errorf("output before failure = %q", out)
	}
	if stats.Converted != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestConvert_StrictNotGregorian(t *testing.T) {
	t.Parallel()

	_, _, err := convertString(t, "tomorrow\n", Options{Column: 0, Direction: ToWareki, Strict: true})
	if !errors.Is(err, ErrNotGregorian) {
		t.Errorf("error = %v, want ErrNotGregorian", err)
	}
}

func TestConvert_ShiftJIS(t *testing.T) {
	t.Parallel()

	in, err := japanese.ShiftJIS.NewEncoder().String("日付,和暦日付\n1,令和8年2月23日\n")
	if err != nil {
		t.Fatalf("encoding input: %v", err)
	}

	var out bytes.Buffer
	stats, err := Convert(strings.NewReader(in), &out, wareki.Default(),
		Options{Column: 1, Direction: FromWareki, Encoding: ShiftJIS, Header: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Converted != 1 {
		t.Errorf("stats = %+v", stats)
	}

	got, err := japanese.ShiftJIS.NewDecoder().String(out.String())
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	want := "日付,和暦日付,西暦\n1,令和8年2月23日,2026-02-23\n"
	if got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(out.String(), "令和") {
		t.Error("output should be Shift_JIS, found UTF-8 text")
	}
}

func TestConvert_EUCJP(t *testing.T) {
	t.Parallel()

	in, err := japanese.EUCJP.NewEncoder().String("1989/1/8\n")
	if err != nil {
		t.Fatalf("encoding input: %v", err)
	}

	var out bytes.Buffer
	if _, err := Convert(strings.NewReader(in), &out, wareki.Default(),
		Options{Direction: ToWareki, Encoding: EUCJP}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := japanese.EUCJP.NewDecoder().String(out.String())
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if got != "1989/1/8,平成元年1月8日\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestConvert_CustomCalendar(t *testing.T) {
	t.Parallel()

	cal, err := wareki.New(wareki.NewEra("甲", "Kou", 2000, time.January, 1, "K"))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	var out bytes.Buffer
	if _, err := Convert(strings.NewReader("K3.1.1\n"), &out, cal, Options{Direction: FromWareki}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "K3.1.1,2002-01-01\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestConvert_InvalidOptions(t *testing.T) {
	t.Parallel()

	if _, _, err := convertString(t, "x\n", Options{Column: -1, Direction: ToWareki}); err == nil {
		t.Error("expected error for negative column")
	}
	if _, _, err := convertString(t, "x\n", Options{Direction: "sideways"}); err == nil {
		t.Error("expected error for invalid direction")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestConvert_ReadError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, err := Convert(failingReader{}, &out, wareki.Default(), Options{Direction: ToWareki})
	if err == nil {
		t.Fatal("expected read error")
	}
	if !strings.Contains(err.Error(), "record 1") || !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("unexpected error: %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestConvert_WriteError(t *testing.T) {
	t.Parallel()

	for _, enc := range []Encoding{UTF8, ShiftJIS, EUCJP} {
		t.Run(string(enc), func(t *testing.T) {
			_, err := Convert(strings.NewReader("R8.2.23\n"), failingWriter{}, wareki.Default(),
				Options{Direction: FromWareki, Encoding: enc})
			if err == nil || !strings.Contains(err.Error(), "disk full") {
				t.Errorf("error = %v, want write failure", err)
			}
		})
	}
}

func TestRowError_Error(t *testing.T) {
	t.Parallel()

	err := &RowError{Record: 4, Value: "R5.2.29", Err: wareki.ErrInvalidArg}
	if got := err.Error(); got != `record 4: "R5.2.29": wareki: invalid argument` {
		t.Errorf("Error() = %q", got)
	}
}
