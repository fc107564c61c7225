package selection

import (
	"context"

	"github.com/wonny/holidayopt/internal/calendar"
	"github.com/wonny/holidayopt/internal/metric"
)

// ctxCheckInterval is how many combinations are evaluated between cancellation checks.
const ctxCheckInterval = 1024

// ExhaustiveResult is the outcome of an exhaustive search.
type ExhaustiveResult struct {
	Best      []calendar.Date `json:"best"`
	BestTotal int             `json:"best_total"`
	Evaluated int64           `json:"evaluated"`
}

// Exhaustive evaluates every combination of exactly k dates from candidates added to
// fixed and returns the one with the smallest total distance.
//
// Combinations are visited in lexicographic order of candidate index and only a strictly
// smaller total replaces the best, so the first optimum found wins. The best total starts
// at the fixed-only baseline; if nothing beats it, Best is empty.
//
// Cost is Binomial(len(candidates), k) full table evaluations. That is fine for k <= 2
// over a full year (~63k) and grows out of reach quickly after that.
func Exhaustive(ctx context.Context, src calendar.Source, year, k int, fixed, candidates []calendar.Date) (ExhaustiveResult, error) {
	result := ExhaustiveResult{
		Best:      []calendar.Date{},
		BestTotal: metric.Total(src, year, fixed),
	}
	if k < 0 || k > len(candidates) {
		return result, nil
	}

	trial := make([]calendar.Date, len(fixed)+k)
	copy(trial, fixed)
	var err error

	combinations(len(candidates), k, func(idx []int) bool {
		if result.Evaluated%ctxCheckInterval == 0 {
			if err = ctx.Err(); err != nil {
				return false
			}
		}
		result.Evaluated++

		for i, ci := range idx {
			trial[len(fixed)+i] = candidates[ci]
		}
		total := metric.Total(src, year, trial)
		if total < result.BestTotal {
			result.BestTotal = total
			result.Best = result.Best[:0]
			for _, ci := range idx {
				result.Best = append(result.Best, candidates[ci])
			}
		}
		return true
	})

	return result, err
}
