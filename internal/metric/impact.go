package metric

import "github.com/wonny/holidayopt/internal/calendar"

// Impact returns how much the table total would drop if candidate became a holiday,
// without recomputing the table. baseline must describe the holiday set before the
// candidate is added. A candidate can only bring days closer to a holiday, so the result
// is never negative; an existing holiday (or a date outside year) yields 0.
func Impact(year int, baseline Table, candidate calendar.Date) int {
	if candidate.Year != year {
		return 0
	}

	ordinal := candidate.Ordinal()
	improvement := 0
	// only days on or before the candidate can move closer to it
	for i := 0; i <= ordinal && i < len(baseline); i++ {
		toCandidate := ordinal - i
		if toCandidate < baseline[i] {
			improvement += baseline[i] - toCandidate
		}
	}
	return improvement
}
