package util

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// AddMonths shifts a year/month pair by delta months, which may be negative
func AddMonths(year, month, delta int) (int, int) {
	idx := year*12 + (month - 1) + delta
	y := idx / 12
	m := idx % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, m + 1
}

// MonthOffset returns how many calendar months d lies before asOf. Dates in
// later months give negative offsets.
func MonthOffset(asOf, d civil.Date) int {
	return (asOf.Year-d.Year)*12 + int(asOf.Month) - int(d.Month)
}

// SameMonth reports whether both dates fall in the same calendar month
func SameMonth(a, b civil.Date) bool {
	return a.Year == b.Year && a.Month == b.Month
}

// LastDayOfMonth returns the number of days in the given month
func LastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthBounds returns the first and last date of a month
func MonthBounds(year int, month time.Month) (civil.Date, civil.Date) {
	from := civil.Date{Year: year, Month: month, Day: 1}
	to := civil.Date{Year: year, Month: month, Day: LastDayOfMonth(year, month)}
	return from, to
}

// QuarterBounds returns the first and last date of the quarter containing d
func QuarterBounds(d civil.Date) (civil.Date, civil.Date) {
	first := time.Month((int(d.Month)-1)/3*3 + 1)
	from, _ := MonthBounds(d.Year, first)
	_, to := MonthBounds(d.Year, first+2)
	return from, to
}

// YearBounds returns January 1st and December 31st of the given year
func YearBounds(year int) (civil.Date, civil.Date) {
	return civil.Date{Year: year, Month: time.January, Day: 1},
		civil.Date{Year: year, Month: time.December, Day: 31}
}

// InRange reports whether d lies within [from, to]
func InRange(d, from, to civil.Date) bool {
	return !d.Before(from) && !d.After(to)
}

// MonthLabel renders a short month label such as "Jan 2026"
func MonthLabel(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String()[:3], year)
}
