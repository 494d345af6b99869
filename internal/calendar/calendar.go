package calendar

import (
	"errors"
	"fmt"
	"time"
)

const (
	Rows    = 6
	Columns = 7
)

var ErrInvalidMonth = errors.New("calendar: invalid month")

type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) InMonth(year int, month time.Month) bool {
	return d.Year == year && d.Month == month
}

// Matrix is a Sunday-first month view. Column 0 is Sunday.
type Matrix [Rows][Columns]Date

func MonthMatrix(year, month int) (Matrix, error) {
	if month < 1 || month > 12 {
		return Matrix{}, fmt.Errorf("%w: %d-%02d", ErrInvalidMonth, year, month)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	anchor := first.AddDate(0, 0, -int(first.Weekday()))

	var out Matrix
	for i := 0; i < Rows*Columns; i++ {
		y, m, d := anchor.AddDate(0, 0, i).Date()
		out[i/Columns][i%Columns] = Date{Year: y, Month: m, Day: d}
	}
	return out, nil
}

// Find returns the cell holding the given date.
func (m Matrix) Find(d Date) (row, col int, ok bool) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if m[r][c] == d {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}
