package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

var (
	// ErrInvalidTimeString is returned when a value is not a valid HH:MM time of day.
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic leaves the current day.
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString is a time of day in HH:MM form, e.g. "09:30".
type TimeString string

// NewTimeString takes the hour and minute of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses s, accepting "H:MM" and "HH:MM".
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

func (ts TimeString) String() string {
	return string(ts)
}

// IsZero reports whether the value is empty.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks the HH:MM format.
func (ts TimeString) Validate() error {
	if _, err := ts.Minutes(); err != nil {
		return err
	}
	return nil
}

// Minutes returns the number of minutes since midnight.
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Hour returns the hour component, or -1 for an invalid value.
func (ts TimeString) Hour() int {
	m, err := ts.Minutes()
	if err != nil {
		return -1
	}
	return m / 60
}

// AddMinutes shifts the time by n minutes; the result must stay within the same day
// (24:00 exactly is not representable and is reported as an overflow).
func (ts TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	total := m + n
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s%+d min", ErrTimeOverflow, ts, n)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore compares two valid times; invalid values compare as false.
func (ts TimeString) IsBefore(other TimeString) bool {
	a, errA := ts.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a < b
}

// IsAfter compares two valid times; invalid values compare as false.
func (ts TimeString) IsAfter(other TimeString) bool {
	a, errA := ts.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a > b
}

// On combines the time of day with the calendar date of day in loc.
func (ts TimeString) On(day time.Time, loc *time.Location) (time.Time, error) {
	m, err := ts.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, loc), nil
}

// Value implements driver.Valuer.
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as "HH:MM:SS".
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case string:
		return ts.scanString(v)
	case []byte:
		return ts.scanString(string(v))
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func (ts *TimeString) scanString(s string) error {
	if len(s) >= 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
