package calendar

import "slices"

// Holiday is a single named holiday.
type Holiday struct {
	Name string `json:"name"`
	Date Date   `json:"date"`
}

// Source yields the fixed holidays of a year, sorted by date.
// Implementations must return at least one holiday for every year.
type Source interface {
	HolidaysForYear(year int) []Holiday
}

// Dates extracts the dates of holidays, preserving order.
func Dates(holidays []Holiday) []Date {
	dates := make([]Date, len(holidays))
	for i, h := range holidays {
		dates[i] = h.Date
	}
	return dates
}

// SortDates sorts dates ascending in place.
func SortDates(dates []Date) {
	slices.SortFunc(dates, Date.Compare)
}

// Candidates returns every date of year that is not in fixed, ascending.
// This is the search space for voluntary holidays.
func Candidates(year int, fixed []Date) []Date {
	taken := make(map[Date]struct{}, len(fixed))
	for _, d := range fixed {
		taken[d] = struct{}{}
	}

	candidates := make([]Date, 0, DaysIn(year))
	for _, d := range DaysOfYear(year) {
		if _, ok := taken[d]; ok {
			continue
		}
		candidates = append(candidates, d)
	}
	return candidates
}
