package calendar_test

import (
	"fmt"

	"github.com/wonny/holidayopt/internal/calendar"
)

func ExampleHolidaysForYear() {
	for _, h := range calendar.HolidaysForYear(2025)[:4] {
		fmt.Printf("%s: %s\n", h.Date.Display(), h.Name)
	}
	// Output:
	// 2025-01-01 (Wed): New Year's Day
	// 2025-01-20 (Mon): MLK Day
	// 2025-02-17 (Mon): President's Day
	// 2025-05-26 (Mon): Memorial Day
}

func ExampleCandidates() {
	fixed := calendar.Dates(calendar.HolidaysForYear(2025))
	fmt.Println(len(calendar.Candidates(2025, fixed)))
	// Output: 354
}
