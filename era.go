package wareki

import "time"

// Era is a named Japanese era with a fixed Gregorian start date.
// Era values are immutable once built with [NewEra].
type Era struct {
	Name    string   // Canonical name (e.g., "令和").
	Romaji  string   // Romanized name (e.g., "Reiwa").
	Aliases []string // Accepted abbreviations (e.g., "令", "r", "R").

	start gregorian
}

// NewEra defines an era starting on the given Gregorian date.
// The date is checked when the era is added to a calendar with [New].
func NewEra(name, romaji string, year int, month time.Month, day int, aliases ...string) Era {
	return Era{
		Name:    name,
		Romaji:  romaji,
		Aliases: append([]string(nil), aliases...),
		start:   gregorian{year: year, month: month, day: day},
	}
}

// Start returns the first day of the era (midnight UTC).
func (e Era) Start() time.Time {
	return e.start.toTime()
}

// IsZero reports whether e is the zero Era.
func (e Era) IsZero() bool {
	return e.Name == "" && e.start == gregorian{}
}

// clone returns e with its own copy of the alias slice.
func (e Era) clone() Era {
	e.Aliases = append([]string(nil), e.Aliases...)
	return e
}

// builtinEras lists the modern eras, oldest first. Meiji applies from the
// first day of the lunisolar year 1868, which is 1868-01-25 in the
// Gregorian calendar.
func builtinEras() []Era {
	return []Era{
		NewEra("明治", "Meiji", 1868, time.January, 25, "明", "m", "M"),
		NewEra("大正", "Taisho", 1912, time.July, 30, "大", "t", "T"),
		NewEra("昭和", "Showa", 1926, time.December, 25, "昭", "s", "S"),
		NewEra("平成", "Heisei", 1989, time.January, 8, "平", "h", "H"),
		NewEra("令和", "Reiwa", 2019, time.May, 1, "令", "r", "R"),
	}
}
