// Package metric computes the days-until-next-holiday table of a year and the
// incremental impact of adding one holiday to it.
package metric

import (
	"fmt"

	"github.com/wonny/holidayopt/internal/calendar"
)

// maxLookahead bounds the search for the next year that has any holiday.
// A full Gregorian cycle is 400 years.
const maxLookahead = 400

// Table holds, for each day of a year (index 0 = Jan 1), the number of days until the
// nearest holiday on or after that day. A holiday itself has distance 0.
type Table []int

// Sum returns the total distance over the year.
func (t Table) Sum() int {
	total := 0
	for _, v := range t {
		total += v
	}
	return total
}

// Mean returns the average distance per day.
func (t Table) Mean() float64 {
	if len(t) == 0 {
		return 0
	}
	return float64(t.Sum()) / float64(len(t))
}

// Max returns the largest distance in the table (the longest wait for a holiday).
func (t Table) Max() int {
	best := 0
	for _, v := range t {
		if v > best {
			best = v
		}
	}
	return best
}

// Compute builds the distance table of year for the given holiday dates, which must be
// sorted ascending. Days after the last holiday of year are measured against the first
// holiday of the following year, as reported by src.
func Compute(src calendar.Source, year int, sorted []calendar.Date) Table {
	n := calendar.DaysIn(year)
	table := make(Table, n)
	jan1 := calendar.FirstDay(year)

	// holidays as day offsets from Jan 1; dates before the year never count as "next"
	offsets := make([]int, 0, len(sorted))
	for _, d := range sorted {
		if off := jan1.DaysUntil(d); off >= 0 {
			offsets = append(offsets, off)
		}
	}

	next := 0
	for i := 0; i < n; i++ {
		for next < len(offsets) && offsets[next] < i {
			next++
		}
		if next < len(offsets) {
			table[i] = offsets[next] - i
			continue
		}
		// past the last holiday of the year: wrap into the following year
		rollover := jan1.DaysUntil(firstHolidayAfter(src, year))
		for ; i < n; i++ {
			table[i] = rollover - i
		}
	}

	return table
}

// Total returns the summed distance of year for holidays in any order.
func Total(src calendar.Source, year int, holidays []calendar.Date) int {
	sorted := make([]calendar.Date, len(holidays))
	copy(sorted, holidays)
	calendar.SortDates(sorted)
	return Compute(src, year, sorted).Sum()
}

// firstHolidayAfter returns the first fixed holiday of the years following year.
func firstHolidayAfter(src calendar.Source, year int) calendar.Date {
	for y := year + 1; y <= year+maxLookahead; y++ {
		if holidays := src.HolidaysForYear(y); len(holidays) > 0 {
			return holidays[0].Date
		}
	}
	panic(fmt.Sprintf("metric: no holidays within %d years after %d", maxLookahead, year))
}
