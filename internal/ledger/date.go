package ledger

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/logger"
)

// DateLayout is the only textual form a Date takes on the wire and in storage.
const DateLayout = "2006-01-02"

// Date is a UTC calendar date with no time-of-day component.
// The zero value is the empty date.
type Date struct {
	t time.Time
}

// NewDate builds a date from its calendar components. Out-of-range
// components are normalized the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

// Today returns the current UTC date according to clock.
func Today(clock func() time.Time) Date {
	if clock == nil {
		clock = time.Now
	}
	return DateOf(clock())
}

// ParseDate parses a strict YYYY-MM-DD string. Values carrying a time of day
// or a timezone offset are rejected.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(DateLayout) {
		return Date{}, apperrors.WithMessage(apperrors.ErrInvalidDate, fmt.Sprintf("invalid date %q, use YYYY-MM-DD", s))
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, apperrors.WithMessage(apperrors.ErrInvalidDate, fmt.Sprintf("invalid date %q, use YYYY-MM-DD", s))
	}
	return Date{t: t}, nil
}

// NormalizeDate accepts YYYY-MM-DD or RFC3339 and returns the UTC calendar
// date. It is meant for boundaries that receive full timestamps.
func NormalizeDate(s string) (Date, error) {
	if d, err := ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return Date{}, apperrors.WithMessage(apperrors.ErrInvalidDate, fmt.Sprintf("invalid date %q, use RFC3339 or YYYY-MM-DD", s))
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for constants and tests. It panics on bad input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is the empty date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return d.t }

func (d Date) Year() int { return d.t.Year() }

func (d Date) Month() time.Month { return d.t.Month() }

func (d Date) Day() int { return d.t.Day() }

func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

func (d Date) YearDay() int { return d.t.YearDay() }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil returns the number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) After(other Date) bool { return d.t.After(other.t) }

func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Compare returns -1, 0 or +1. The empty date sorts before every real date.
func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}

// String formats d as YYYY-MM-DD, or "" for the empty date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalJSON encodes d as "YYYY-MM-DD", or null for the empty date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return apperrors.WithMessage(apperrors.ErrInvalidDate, "date must be a YYYY-MM-DD string")
	}
	s := string(data[1 : len(data)-1])
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores d as a YYYY-MM-DD string; the empty date is stored as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan reads a date column. Drivers hand back time.Time for typed date
// columns and text otherwise. A value that can't be read as a date is
// recovered as the empty date and logged rather than failing the whole query.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		logger.Get().Warnw("unreadable stored date", "type", fmt.Sprintf("%T", src))
		*d = Date{}
		return nil
	}
}

func (d *Date) scanText(s string) error {
	if s == "" {
		*d = Date{}
		return nil
	}
	if len(s) > len(DateLayout) {
		// Some drivers append a time component to date columns.
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		logger.Get().Warnw("unreadable stored date", "value", s)
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}

// GormDataType declares the column type used by AutoMigrate.
func (Date) GormDataType() string { return "date" }
