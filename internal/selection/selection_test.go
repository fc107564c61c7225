package selection

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/holidayopt/internal/calendar"
	"github.com/wonny/holidayopt/internal/metric"
)

func d(year int, month time.Month, day int) calendar.Date {
	return calendar.Date{Year: year, Month: month, Day: day}
}

func fixed(year int) []calendar.Date {
	return calendar.Dates(calendar.HolidaysForYear(year))
}

func TestGreedy_2025(t *testing.T) {
	var seen []Pick
	picks, err := Greedy(context.Background(), calendar.Default(), 2025, 3, fixed(2025), func(p Pick) {
		seen = append(seen, p)
	})
	require.NoError(t, err)

	want := []Pick{
		{Round: 1, Date: d(2025, time.April, 7), Impact: 2401, Total: 9080},
		{Round: 2, Date: d(2025, time.October, 14), Impact: 1892, Total: 7188},
		{Round: 3, Date: d(2025, time.August, 2), Impact: 870, Total: 6318},
	}
	assert.Equal(t, want, picks)
	assert.Equal(t, want, seen)
	assert.Equal(t, 6318, metric.Total(calendar.Default(), 2025, append(fixed(2025), Dates(picks)...)))
}

func TestGreedy_Deterministic(t *testing.T) {
	ctx := context.Background()
	first, err := Greedy(ctx, calendar.Default(), 2024, 4, fixed(2024), nil)
	require.NoError(t, err)
	second, err := Greedy(ctx, calendar.Default(), 2024, 4, fixed(2024), nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
}

func TestGreedy_ZeroCount(t *testing.T) {
	picks, err := Greedy(context.Background(), calendar.Default(), 2025, 0, fixed(2025), nil)
	require.NoError(t, err)
	assert.Empty(t, picks)
}

func TestGreedy_StopsEarly(t *testing.T) {
	// every day but Jan 5 is already a holiday: one useful pick, then nothing left
	all := calendar.DaysOfYear(2025)
	var nearlyAll []calendar.Date
	for _, day := range all {
		if day != d(2025, time.January, 5) {
			nearlyAll = append(nearlyAll, day)
		}
	}

	picks, err := Greedy(context.Background(), calendar.Default(), 2025, 3, nearlyAll, nil)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, Pick{Round: 1, Date: d(2025, time.January, 5), Impact: 1, Total: 0}, picks[0])

	picks, err = Greedy(context.Background(), calendar.Default(), 2025, 3, all, nil)
	require.NoError(t, err)
	assert.Empty(t, picks)
}

func TestGreedy_CountFarAboveCandidates(t *testing.T) {
	// one free day left: any k beyond it yields that single pick
	var nearlyAll []calendar.Date
	for _, day := range calendar.DaysOfYear(2025) {
		if day != d(2025, time.June, 30) {
			nearlyAll = append(nearlyAll, day)
		}
	}
	for _, k := range []int{2, 1 << 40, math.MaxInt} {
		picks, err := Greedy(context.Background(), calendar.Default(), 2025, k, nearlyAll, nil)
		require.NoError(t, err, "k=%d", k)
		require.Len(t, picks, 1, "k=%d", k)
		assert.Equal(t, d(2025, time.June, 30), picks[0].Date)
		assert.Equal(t, 0, picks[0].Total)
	}

	// full calendar: every free day ends up picked
	f := fixed(2025)
	picks, err := Greedy(context.Background(), calendar.Default(), 2025, 1<<62, f, nil)
	require.NoError(t, err)
	assert.Len(t, picks, len(calendar.Candidates(2025, f)))
	assert.Equal(t, 0, picks[len(picks)-1].Total)
}

func TestGreedy_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Greedy(ctx, calendar.Default(), 2025, 3, fixed(2025), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExhaustive_ZeroCount(t *testing.T) {
	f := fixed(2025)
	res, err := Exhaustive(context.Background(), calendar.Default(), 2025, 0, f, calendar.Candidates(2025, f))
	require.NoError(t, err)

	assert.Empty(t, res.Best)
	assert.Equal(t, 11481, res.BestTotal)
	assert.Equal(t, int64(1), res.Evaluated)
}

func TestExhaustive_2024SingleDateBisectsLongestGap(t *testing.T) {
	f := fixed(2024)
	candidates := calendar.Candidates(2024, f)

	res, err := Exhaustive(context.Background(), calendar.Default(), 2024, 1, f, candidates)
	require.NoError(t, err)
	require.Len(t, res.Best, 1)
	assert.Equal(t, int64(355), res.Evaluated)
	assert.Equal(t, 9228, res.BestTotal)

	// longest gap between consecutive fixed holidays (Feb 19 -> May 27 in 2024)
	gapStart, gapEnd := f[0], f[1]
	for i := 2; i < len(f); i++ {
		if f[i-1].DaysUntil(f[i]) > gapStart.DaysUntil(gapEnd) {
			gapStart, gapEnd = f[i-1], f[i]
		}
	}
	require.Equal(t, d(2024, time.February, 19), gapStart)
	require.Equal(t, d(2024, time.May, 27), gapEnd)

	best := res.Best[0]
	assert.Equal(t, d(2024, time.April, 8), best)
	assert.True(t, best.After(gapStart) && best.Before(gapEnd))

	half := gapStart.DaysUntil(gapEnd) / 2
	assert.InDelta(t, half, gapStart.DaysUntil(best), 2)
}

func TestExhaustive_SmallPool(t *testing.T) {
	f := fixed(2025)
	pool := []calendar.Date{
		d(2025, time.August, 1),
		d(2025, time.August, 2),
		d(2025, time.October, 15),
		d(2025, time.March, 1),
	}

	// hand-computed totals of all C(4,2) pairs:
	//   aug1+aug2 10583, aug1+oct15 8721, aug1+mar1 9581,
	//   aug2+oct15 8719, aug2+mar1 9579, oct15+mar1 8557
	res, err := Exhaustive(context.Background(), calendar.Default(), 2025, 2, f, pool)
	require.NoError(t, err)

	assert.Equal(t, int64(6), res.Evaluated)
	assert.Equal(t, 8557, res.BestTotal)
	assert.Equal(t, []calendar.Date{d(2025, time.October, 15), d(2025, time.March, 1)}, res.Best)
}

func TestExhaustive_MoreThanCandidates(t *testing.T) {
	f := fixed(2025)
	pool := []calendar.Date{d(2025, time.August, 1)}

	res, err := Exhaustive(context.Background(), calendar.Default(), 2025, 2, f, pool)
	require.NoError(t, err)
	assert.Empty(t, res.Best)
	assert.Equal(t, int64(0), res.Evaluated)
	assert.Equal(t, 11481, res.BestTotal)
}

func TestExhaustive_CountFarAboveCandidates(t *testing.T) {
	f := fixed(2025)
	candidates := calendar.Candidates(2025, f)

	for _, k := range []int{len(candidates) + 1, 1 << 40, math.MaxInt} {
		res, err := Exhaustive(context.Background(), calendar.Default(), 2025, k, f, candidates)
		require.NoError(t, err, "k=%d", k)
		assert.Empty(t, res.Best, "k=%d", k)
		assert.Equal(t, int64(0), res.Evaluated, "k=%d", k)
		assert.Equal(t, 11481, res.BestTotal, "k=%d", k)
	}
}

func TestExhaustive_NoImprovementKeepsEmpty(t *testing.T) {
	f := fixed(2025)
	// adding an existing holiday again never lowers the total
	res, err := Exhaustive(context.Background(), calendar.Default(), 2025, 1, f, []calendar.Date{f[0], f[1]})
	require.NoError(t, err)
	assert.Empty(t, res.Best)
	assert.Equal(t, int64(2), res.Evaluated)
}

func TestExhaustive_NotWorseThanGreedy(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full pairwise search")
	}

	ctx := context.Background()
	f := fixed(2025)

	picks, err := Greedy(ctx, calendar.Default(), 2025, 2, f, nil)
	require.NoError(t, err)
	greedyTotal := metric.Total(calendar.Default(), 2025, append(append([]calendar.Date{}, f...), Dates(picks)...))

	res, err := Exhaustive(ctx, calendar.Default(), 2025, 2, f, calendar.Candidates(2025, f))
	require.NoError(t, err)

	assert.Equal(t, int64(62481), res.Evaluated)
	assert.LessOrEqual(t, res.BestTotal, greedyTotal)
	assert.Equal(t, 7188, res.BestTotal)
}

func TestExhaustive_Deterministic(t *testing.T) {
	f := fixed(2024)
	candidates := calendar.Candidates(2024, f)
	ctx := context.Background()

	a, err := Exhaustive(ctx, calendar.Default(), 2024, 1, f, candidates)
	require.NoError(t, err)
	b, err := Exhaustive(ctx, calendar.Default(), 2024, 1, f, candidates)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExhaustive_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := fixed(2025)
	_, err := Exhaustive(ctx, calendar.Default(), 2025, 2, f, calendar.Candidates(2025, f))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBinomial(t *testing.T) {
	tests := []struct {
		n, k int
		want uint64
	}{
		{4, 2, 6},
		{354, 0, 1},
		{354, 1, 354},
		{354, 2, 62481},
		{355, 2, 62835},
		{354, 3, 7331104},
		{3, 5, 0},
		{5, -1, 0},
		{365, 180, math.MaxUint64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Binomial(tt.n, tt.k), "C(%d,%d)", tt.n, tt.k)
	}
}

func TestCombinations_Order(t *testing.T) {
	var got [][]int
	combinations(4, 2, func(idx []int) bool {
		got = append(got, append([]int(nil), idx...))
		return true
	})
	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, got)

	count := 0
	combinations(3, 0, func(idx []int) bool {
		assert.Empty(t, idx)
		count++
		return true
	})
	assert.Equal(t, 1, count)

	count = 0
	combinations(5, 3, func([]int) bool {
		count++
		return count < 4
	})
	assert.Equal(t, 4, count, "stops when fn returns false")
}
