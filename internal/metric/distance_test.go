package metric

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/holidayopt/internal/calendar"
)

func d(year int, month time.Month, day int) calendar.Date {
	return calendar.Date{Year: year, Month: month, Day: day}
}

func fixed(year int) []calendar.Date {
	return calendar.Dates(calendar.HolidaysForYear(year))
}

// stubSource returns a fixed list per year; missing years have no holidays.
type stubSource map[int][]calendar.Holiday

func (s stubSource) HolidaysForYear(year int) []calendar.Holiday { return s[year] }

func TestCompute_2025(t *testing.T) {
	table := Compute(calendar.Default(), 2025, fixed(2025))

	require.Len(t, table, 365)
	assert.Equal(t, 0, table[0], "new year's day")
	assert.Equal(t, 18, table[1], "jan 2 -> mlk day (jan 20)")
	assert.Equal(t, []int{6, 5, 4, 3, 2, 1}, []int(table[359:]), "dec 26..31 -> next new year's day")
	assert.Equal(t, 97, table.Max())
	assert.Equal(t, 11481, table.Sum())
	assert.InDelta(t, 11481.0/365.0, table.Mean(), 1e-9)

	for _, h := range fixed(2025) {
		assert.Equal(t, 0, table[h.Ordinal()], "holiday %s", h)
	}
	for i, v := range table {
		assert.GreaterOrEqual(t, v, 0, "day %d", i)
	}
}

func TestCompute_LeapYear(t *testing.T) {
	table := Compute(calendar.Default(), 2024, fixed(2024))
	require.Len(t, table, 366)
	assert.Equal(t, 11629, table.Sum())
}

func TestCompute_RolloverSkipsEmptyYears(t *testing.T) {
	src := stubSource{
		2030: {{Name: "far", Date: d(2030, time.January, 2)}},
	}
	table := Compute(src, 2027, []calendar.Date{d(2027, time.December, 30)})

	assert.Equal(t, 0, table[363])
	// Dec 31 2027 -> Jan 2 2030 = 1 + 366 (2028) + 365 (2029) + 1
	assert.Equal(t, 733, table[364])
}

func TestCompute_EmptyHolidaySet(t *testing.T) {
	table := Compute(calendar.Default(), 2025, nil)
	// every day waits for new year's day 2026
	assert.Equal(t, 365, table[0])
	assert.Equal(t, 1, table[364])
}

func TestTotal_UnsortedInput(t *testing.T) {
	dates := fixed(2025)
	reversed := make([]calendar.Date, len(dates))
	for i, v := range dates {
		reversed[len(dates)-1-i] = v
	}

	assert.Equal(t, Total(calendar.Default(), 2025, dates), Total(calendar.Default(), 2025, reversed))
	assert.Equal(t, d(2025, time.January, 1), reversed[len(reversed)-1], "input must not be reordered")
}

func TestTotal_Monotonic(t *testing.T) {
	src := calendar.Default()
	base := fixed(2025)
	baseTotal := Total(src, 2025, base)

	for _, extra := range []calendar.Date{
		d(2025, time.January, 2), d(2025, time.April, 7), d(2025, time.August, 15), d(2025, time.December, 31),
	} {
		added := append(append([]calendar.Date{}, base...), extra)
		assert.LessOrEqual(t, Total(src, 2025, added), baseTotal, "adding %s", extra)
	}

	for i := range base {
		removed := append(append([]calendar.Date{}, base[:i]...), base[i+1:]...)
		assert.GreaterOrEqual(t, Total(src, 2025, removed), baseTotal, "removing %s", base[i])
	}
}
