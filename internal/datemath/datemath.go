package datemath

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	SecondsPerDay = 24 * 60 * 60
)

var ErrInvalidDate = errors.New("datemath: invalid date")

// Timestamp is a day-granularity instant: seconds since the epoch at
// midnight of a calendar day. The calendar day is taken in local time and
// encoded on a UTC axis so differences are always whole days.
type Timestamp int64

type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidDate, e.Input)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidDate
}

func ParseDate(s string) (Timestamp, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, &ParseError{Input: s}
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return 0, &ParseError{Input: s, Err: err}
	}
	return Timestamp(t.Unix()), nil
}

// DayDifference returns the signed number of days from a to b.
func DayDifference(a, b string) (int64, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	return Days(ta, tb), nil
}

func Days(from, to Timestamp) int64 {
	return int64(to-from) / SecondsPerDay
}

// FromTime truncates t to its local calendar day.
func FromTime(t time.Time) Timestamp {
	local := t.In(time.Local)
	y, m, d := local.Date()
	return Timestamp(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix())
}

func NowTimestamp(c Clock) Timestamp {
	if c == nil {
		c = SystemClock{}
	}
	return FromTime(c.Now())
}

// Today formats the local calendar day of now.
func Today(now time.Time) string {
	return FromTime(now).String()
}

func (t Timestamp) AddDays(n int) Timestamp {
	return t + Timestamp(int64(n)*SecondsPerDay)
}

func (t Timestamp) String() string {
	return time.Unix(int64(t), 0).UTC().Format(DateLayout)
}

// Local returns local midnight of the day t represents.
func (t Timestamp) Local() time.Time {
	y, m, d := time.Unix(int64(t), 0).UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
