package wareki

import (
	"fmt"
	"time"
)

// gregorian is an internal comparable proleptic-Gregorian calendar date.
// Users work with (year, month, day) arguments or time.Time; this type is
// not exported.
type gregorian struct {
	year  int
	month time.Month
	day   int
}

// gregorianFromTime takes the calendar date of t in t's own location.
func gregorianFromTime(t time.Time) gregorian {
	y, m, d := t.Date()
	return gregorian{year: y, month: m, day: d}
}

func (g gregorian) toTime() time.Time {
	return time.Date(g.year, g.month, g.day, 0, 0, 0, 0, time.UTC)
}

// valid reports whether g names an existing day.
func (g gregorian) valid() bool {
	if g.month < time.January || g.month > time.December {
		return false
	}
	return g.day >= 1 && g.day <= DaysIn(g.year, g.month)
}

func (g gregorian) before(other gregorian) bool {
	if g.year != other.year {
		return g.year < other.year
	}
	if g.month != other.month {
		return g.month < other.month
	}
	return g.day < other.day
}

func (g gregorian) after(other gregorian) bool {
	return other.before(g)
}

// prev returns the day before g.
func (g gregorian) prev() gregorian {
	if g.day > 1 {
		return gregorian{year: g.year, month: g.month, day: g.day - 1}
	}
	if g.month > time.January {
		m := g.month - 1
		return gregorian{year: g.year, month: m, day: DaysIn(g.year, m)}
	}
	return gregorian{year: g.year - 1, month: time.December, day: 31}
}

// String formats g as zero-padded YYYY-MM-DD.
func (g gregorian) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.year, int(g.month), g.day)
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month, or 0 if month is out
// of range.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.January, time.March, time.May, time.July,
		time.August, time.October, time.December:
		return 31
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}
