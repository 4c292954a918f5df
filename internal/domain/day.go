package domain

import (
	"fmt"
	"time"
)

// Day is a calendar date in the game's reference zone. Days compare with ==.
type Day struct {
	Year  int
	Month time.Month
	Mday  int
}

const dayLayout = "2006-01-02"

// DayOf returns the civil date of t in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, Mday: d}
}

// DayFromDate takes the calendar fields of t as-is, without zone conversion.
// Used for DATE columns, which pgx returns as UTC midnight.
func DayFromDate(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Mday: d}
}

// ParseDay parses YYYY-MM-DD.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return DayFromDate(t), nil
}

func (d Day) IsZero() bool {
	return d == Day{}
}

// Date returns UTC midnight of d.
func (d Day) Date() time.Time {
	return time.Date(d.Year, d.Month, d.Mday, 0, 0, 0, 0, time.UTC)
}

// AddDays does calendar arithmetic, unaffected by DST.
func (d Day) AddDays(n int) Day {
	return DayFromDate(d.Date().AddDate(0, 0, n))
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Date().Format(dayLayout)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
