package wareki

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var (
	// 令和8年2月23日, 令和元年5月1日
	kanjiPattern = regexp.MustCompile(`^(.+?)\s*(元|[0-9]+)\s*年\s*([0-9]+)\s*月\s*([0-9]+)\s*日$`)
	// R8.2.23, r08/02/23, H1-1-8
	shortPattern = regexp.MustCompile(`^(.+?)\s*([0-9]+)[./-]([0-9]+)[./-]([0-9]+)$`)
)

// normalizeInput composes s to NFC and folds full-width digits, Latin
// letters and punctuation to their narrow forms.
func normalizeInput(s string) string {
	return strings.TrimSpace(width.Fold.String(norm.NFC.String(s)))
}

// Parse reads an era date written as "令和8年2月23日", "令和元年5月1日" or
// "R8.2.23" ('/' and '-' are accepted in place of '.'). Full-width digits
// and letters are accepted. The era token is resolved like FromWareki's era
// argument, and the resulting Gregorian date must exist.
func (c *Calendar) Parse(s string) (Date, error) {
	in := normalizeInput(s)

	m := kanjiPattern.FindStringSubmatch(in)
	if m == nil {
		m = shortPattern.FindStringSubmatch(in)
	}
	if m == nil {
		return Date{}, invalidArg("Parse", "input", s, "not an era date")
	}

	e, ok := c.lookup(m[1])
	if !ok {
		return Date{}, invalidArg("Parse", "era", m[1], "unknown era name or abbreviation")
	}

	year := 1
	if m[2] != "元" {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return Date{}, invalidArg("Parse", "year", m[2], err.Error())
		}
		year = n
	}
	month, err := strconv.Atoi(m[3])
	if err != nil {
		return Date{}, invalidArg("Parse", "month", m[3], err.Error())
	}
	day, err := strconv.Atoi(m[4])
	if err != nil {
		return Date{}, invalidArg("Parse", "day", m[4], err.Error())
	}

	if _, err := c.fromWareki("Parse", e.Name, year, time.Month(month), day); err != nil {
		return Date{}, err
	}
	return Date{Era: e.Name, Year: year, Month: time.Month(month), Day: day}, nil
}

// Parse reads an era date using the built-in era table.
func Parse(s string) (Date, error) { return defaultCal.Parse(s) }
