package wareki

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Eras returns the calendar's eras, oldest first.
func (c *Calendar) Eras() []Era {
	out := make([]Era, len(c.eras))
	for i, e := range c.eras {
		out[i] = e.clone()
	}
	return out
}

// LookupEra resolves an era name or alias with the same case-sensitive rule
// as FromWareki.
func (c *Calendar) LookupEra(s string) (Era, bool) {
	e, ok := c.lookup(s)
	if !ok {
		return Era{}, false
	}
	return e.clone(), true
}

// EraOf returns the era containing the given Gregorian date.
func (c *Calendar) EraOf(year int, month time.Month, day int) (Era, error) {
	g := gregorian{year: year, month: month, day: day}
	if !g.valid() {
		return Era{}, invalidDate("EraOf", g)
	}
	i := c.eraIndexOf(g)
	if i < 0 {
		return Era{}, invalidArg("EraOf", "date", g.String(), "precedes the first supported era")
	}
	return c.eras[i].clone(), nil
}

// End returns the last day of e (midnight UTC): the day before the next era
// starts. It returns false for the current era and for eras not in c.
func (c *Calendar) End(e Era) (time.Time, bool) {
	i, ok := c.byName[e.Name]
	if !ok || i == len(c.eras)-1 {
		return time.Time{}, false
	}
	return c.eras[i+1].start.prev().toTime(), true
}

// Short formats d in abbreviated notation, e.g. "R8.2.23". The era is
// written as the uppercase initial of its romaji, or its canonical name if
// it has none.
func (c *Calendar) Short(d Date) string {
	prefix := d.Era
	if e, ok := c.lookup(d.Era); ok && e.Romaji != "" {
		r, _ := utf8.DecodeRuneInString(e.Romaji)
		prefix = strings.ToUpper(string(r))
	}
	return fmt.Sprintf("%s%d.%d.%d", prefix, d.Year, int(d.Month), d.Day)
}

// --- Package-level convenience functions ---

// Eras returns the built-in eras, oldest first.
func Eras() []Era { return defaultCal.Eras() }

// LookupEra resolves an era name or alias in the built-in table.
func LookupEra(s string) (Era, bool) { return defaultCal.LookupEra(s) }

// EraOf returns the built-in era containing the given Gregorian date.
func EraOf(year int, month time.Month, day int) (Era, error) {
	return defaultCal.EraOf(year, month, day)
}

// End returns the last day of a built-in era.
func End(e Era) (time.Time, bool) { return defaultCal.End(e) }

// Short formats d in abbreviated notation using the built-in table.
func Short(d Date) string { return defaultCal.Short(d) }
