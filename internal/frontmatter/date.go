package frontmatter

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted textual date format.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	t time.Time
}

// NewDate returns the calendar date y-m-d.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// tomlLocalDate is the zone the TOML decoder attaches to bare local dates.
// Local times, local datetimes and offset datetimes carry other zones.
const tomlLocalDate = "date-local"

// UnmarshalTOML accepts a TOML local date (2021-06-01) or a quoted
// "2021-06-01" string. Times and datetimes are rejected, even at midnight.
func (d *Date) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case time.Time:
		if v.Location() == nil || v.Location().String() != tomlLocalDate {
			return fmt.Errorf("date %s must be a calendar date without a time component", v.Format(time.RFC3339))
		}
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return fmt.Errorf("date %q is not in %s format", v, DateLayout)
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("date must be a TOML date or %s string, got %T", DateLayout, value)
	}
}

// MarshalTOML writes the date as a bare TOML local date.
func (d Date) MarshalTOML() ([]byte, error) {
	return []byte(d.String()), nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Format formats the date with a time layout, for templates.
func (d Date) Format(layout string) string {
	return d.t.Format(layout)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return d.t
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}
