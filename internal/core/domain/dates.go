package domain

import (
	"fmt"
	"strings"
	"time"
)

// Wire layouts for dates and timestamps. Everything that parses or renders
// them refers here.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Date is a calendar date serialized as "2006-01-02". The zero value
// serializes as an empty string.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("illegal date field %q: %w", s, err)
	}
	*d = Date{t}
	return nil
}

// DateTime is a wall-clock timestamp serialized as "2006-01-02T15:04:05",
// second precision, no zone designator.
type DateTime struct {
	time.Time
}

// NewDateTime truncates to whole seconds so a value survives a round trip
// through the wire format unchanged.
func NewDateTime(t time.Time) DateTime {
	return DateTime{t.Truncate(time.Second)}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = DateTime{}
		return nil
	}
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("illegal date time field %q: %w", s, err)
	}
	*d = DateTime{t}
	return nil
}
