// Package wareki converts between the Gregorian calendar and the Japanese
// era calendar (和暦).
//
// The built-in era table covers 明治 (from 1868-01-25) through 令和. All date
// arithmetic uses the proleptic Gregorian calendar; there is no time-of-day
// or timezone handling.
//
// Basic usage with package-level functions:
//
//	d, _ := wareki.ToWareki(2026, time.February, 23)
//	d.Era           // "令和"
//	d.Year          // 8
//	d.String()      // "令和8年2月23日"
//
//	s, _ := wareki.FromWareki("R", 8, time.February, 23)
//	s               // "2026-02-23"
//
// Every conversion failure matches [ErrInvalidArg]:
//
//	if _, err := wareki.FromWareki("令和", 5, 2, 29); errors.Is(err, wareki.ErrInvalidArg) {
//		// 2023 is not a leap year
//	}
//
// For a custom era table (for example an era announced after this package
// was released), build a Calendar with [New]:
//
//	cal, err := wareki.New(append(wareki.Eras(), wareki.NewEra("新元号", "Shin", 2040, 1, 1, "新"))...)
package wareki

import (
	"fmt"
	"slices"
	"time"
)

// Date is a date in the Japanese era calendar.
type Date struct {
	Era   string     // Canonical era name (e.g., "令和"), never an abbreviation.
	Year  int        // Era-relative year; 1 is 元年.
	Month time.Month // 1-12.
	Day   int        // 1-31.
}

// String formats d in Japanese notation, e.g. "令和8年2月23日". The first year
// of an era is written 元年.
func (d Date) String() string {
	if d.Year == 1 {
		return fmt.Sprintf("%s元年%d月%d日", d.Era, int(d.Month), d.Day)
	}
	return fmt.Sprintf("%s%d年%d月%d日", d.Era, d.Year, int(d.Month), d.Day)
}

// Calendar holds an era table. Create one with [New] or use [Default].
// A Calendar is never modified after construction, so all methods are safe
// for concurrent use.
type Calendar struct {
	eras    []Era          // ascending by start date
	byName  map[string]int // canonical name -> index into eras
	byAlias map[string]int // alias -> index into eras
}

// New builds a Calendar from the given eras. The eras may be passed in any
// order; they are sorted by start date. New fails with [ErrInvalidEraTable]
// if the table is empty, an era has no name or an impossible start date, two
// eras start on the same day, or a name or alias is claimed by two eras.
func New(eras ...Era) (*Calendar, error) {
	if len(eras) == 0 {
		return nil, fmt.Errorf("%w: no eras", ErrInvalidEraTable)
	}

	sorted := make([]Era, len(eras))
	for i, e := range eras {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: era #%d has no name", ErrInvalidEraTable, i)
		}
		if !e.start.valid() {
			return nil, fmt.Errorf("%w: era %s: invalid start date %s", ErrInvalidEraTable, e.Name, e.start)
		}
		sorted[i] = e.clone()
	}
	slices.SortStableFunc(sorted, func(a, b Era) int {
		switch {
		case a.start.before(b.start):
			return -1
		case a.start.after(b.start):
			return 1
		}
		return 0
	})

	c := &Calendar{
		eras:    sorted,
		byName:  make(map[string]int, len(sorted)),
		byAlias: make(map[string]int),
	}
	claimed := make(map[string]int)
	claim := func(key string, i int) error {
		if owner, ok := claimed[key]; ok && owner != i {
			return fmt.Errorf("%w: %q is used by both %s and %s",
				ErrInvalidEraTable, key, sorted[owner].Name, sorted[i].Name)
		}
		claimed[key] = i
		return nil
	}

	for i, e := range sorted {
		if i > 0 && sorted[i-1].start == e.start {
			return nil, fmt.Errorf("%w: %s and %s both start on %s",
				ErrInvalidEraTable, sorted[i-1].Name, e.Name, e.start)
		}
		if err := claim(e.Name, i); err != nil {
			return nil, err
		}
		c.byName[e.Name] = i
		for _, a := range e.Aliases {
			if a == "" {
				continue
			}
			if err := claim(a, i); err != nil {
				return nil, err
			}
			c.byAlias[a] = i
		}
	}
	return c, nil
}

// defaultCal is the package-level calendar used by top-level functions.
var defaultCal = mustNew(builtinEras()...)

func mustNew(eras ...Era) *Calendar {
	c, err := New(eras...)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the calendar backed by the built-in era table.
func Default() *Calendar { return defaultCal }

// lookup resolves a canonical name first, then an alias. Matching is
// case-sensitive.
func (c *Calendar) lookup(s string) (Era, bool) {
	if i, ok := c.byName[s]; ok {
		return c.eras[i], true
	}
	if i, ok := c.byAlias[s]; ok {
		return c.eras[i], true
	}
	return Era{}, false
}

// eraIndexOf returns the index of the era containing g, scanning from the
// most recent era backward, or -1 if g precedes the first era.
func (c *Calendar) eraIndexOf(g gregorian) int {
	for i := len(c.eras) - 1; i >= 0; i-- {
		if !g.before(c.eras[i].start) {
			return i
		}
	}
	return -1
}

func (c *Calendar) toWareki(op string, g gregorian) (Date, error) {
	if !g.valid() {
		return Date{}, invalidDate(op, g)
	}
	i := c.eraIndexOf(g)
	if i < 0 {
		return Date{}, invalidArg(op, "date", g.String(),
			fmt.Sprintf("precedes the first supported era %s (%s)", c.eras[0].Name, c.eras[0].start))
	}
	e := c.eras[i]
	return Date{
		Era:   e.Name,
		Year:  g.year - e.start.year + 1,
		Month: g.month,
		Day:   g.day,
	}, nil
}

func (c *Calendar) fromWareki(op, era string, year int, month time.Month, day int) (gregorian, error) {
	e, ok := c.lookup(era)
	if !ok {
		return gregorian{}, invalidArg(op, "era", era, "unknown era name or abbreviation")
	}
	if year < 1 {
		return gregorian{}, invalidArg(op, "year", year, "era year must be 1 or greater")
	}
	g := gregorian{year: e.start.year + year - 1, month: month, day: day}
	if g.year < e.start.year { // wrapped past math.MaxInt
		return gregorian{}, invalidArg(op, "year", year, "too large for the Gregorian calendar")
	}
	if !g.valid() {
		return gregorian{}, invalidDate(op, g)
	}
	return g, nil
}

// ToWareki converts a Gregorian date to the Japanese era calendar.
// The year in which an era begins is always year 1 of that era, whatever
// the month and day. ToWareki fails with [ErrInvalidArg] if the date does not
// exist or precedes the first era of the table.
func (c *Calendar) ToWareki(year int, month time.Month, day int) (Date, error) {
	return c.toWareki("ToWareki", gregorian{year: year, month: month, day: day})
}

// ToWarekiTime converts the calendar date of t, taken in t's own location.
func (c *Calendar) ToWarekiTime(t time.Time) (Date, error) {
	return c.toWareki("ToWarekiTime", gregorianFromTime(t))
}

// FromWareki converts an era date to a Gregorian date formatted as
// YYYY-MM-DD. era may be the canonical name or any alias of an era
// ("令和", "令", "r", "R"). The era year is not checked against the era's
// historical end: FromWareki("平成", 32, 1, 1) returns "2020-01-01".
// FromWareki fails with [ErrInvalidArg] for an unknown era, a year below 1,
// or a month and day that do not exist in the resulting Gregorian year.
func (c *Calendar) FromWareki(era string, year int, month time.Month, day int) (string, error) {
	g, err := c.fromWareki("FromWareki", era, year, month, day)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}

// FromWarekiTime is like FromWareki but returns the date as midnight UTC.
func (c *Calendar) FromWarekiTime(era string, year int, month time.Month, day int) (time.Time, error) {
	g, err := c.fromWareki("FromWarekiTime", era, year, month, day)
	if err != nil {
		return time.Time{}, err
	}
	return g.toTime(), nil
}

// --- Package-level convenience functions ---

// ToWareki converts a Gregorian date using the built-in era table.
func ToWareki(year int, month time.Month, day int) (Date, error) {
	return defaultCal.ToWareki(year, month, day)
}

// ToWarekiTime converts the calendar date of t using the built-in era table.
func ToWarekiTime(t time.Time) (Date, error) { return defaultCal.ToWarekiTime(t) }

// FromWareki converts an era date to YYYY-MM-DD using the built-in era table.
func FromWareki(era string, year int, month time.Month, day int) (string, error) {
	return defaultCal.FromWareki(era, year, month, day)
}

// FromWarekiTime converts an era date to midnight UTC using the built-in era table.
func FromWarekiTime(era string, year int, month time.Month, day int) (time.Time, error) {
	return defaultCal.FromWarekiTime(era, year, month, day)
}
