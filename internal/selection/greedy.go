// Package selection chooses voluntary holidays, either greedily one date at a time or by
// exhaustive search over every combination of candidates.
package selection

import (
	"context"

	"github.com/wonny/holidayopt/internal/calendar"
	"github.com/wonny/holidayopt/internal/metric"
)

// Pick is one round of the greedy selector.
type Pick struct {
	Round  int           `json:"round"`
	Date   calendar.Date `json:"date"`
	Impact int           `json:"impact"`
	Total  int           `json:"total"` // table total after adding Date
}

// Greedy adds up to k voluntary holidays to fixed, each round choosing the candidate with
// the largest impact on the current distance table.
//
// Candidates are scanned in ascending date order and a candidate only wins with a strictly
// larger impact, so ties go to the earliest date. Selection stops early when no candidate
// improves the total. onPick, if non-nil, is called after every round.
//
// The result is a heuristic: picks interact once made, so the greedy set is not
// guaranteed to be optimal (see Exhaustive).
func Greedy(ctx context.Context, src calendar.Source, year, k int, fixed []calendar.Date, onPick func(Pick)) ([]Pick, error) {
	candidates := calendar.Candidates(year, fixed)
	// 후보보다 많이 고를 수는 없음
	k = min(max(k, 0), len(candidates))

	current := make([]calendar.Date, len(fixed), len(fixed)+k)
	copy(current, fixed)
	calendar.SortDates(current)
	baseline := metric.Compute(src, year, current)

	selected := make(map[calendar.Date]bool, k)
	picks := make([]Pick, 0, k)

	for round := 1; round <= k; round++ {
		if err := ctx.Err(); err != nil {
			return picks, err
		}

		best, bestImpact := bestCandidate(year, baseline, candidates, selected)
		if bestImpact == 0 {
			break
		}

		selected[best] = true
		current = append(current, best)
		calendar.SortDates(current)
		baseline = metric.Compute(src, year, current)

		pick := Pick{Round: round, Date: best, Impact: bestImpact, Total: baseline.Sum()}
		picks = append(picks, pick)
		if onPick != nil {
			onPick(pick)
		}
	}

	return picks, nil
}

// bestCandidate returns the first unselected candidate with the strictly largest positive
// impact. bestImpact is 0 when nothing improves the table.
func bestCandidate(year int, baseline metric.Table, candidates []calendar.Date, selected map[calendar.Date]bool) (best calendar.Date, bestImpact int) {
	for _, c := range candidates {
		if selected[c] {
			continue
		}
		if impact := metric.Impact(year, baseline, c); impact > bestImpact {
			best, bestImpact = c, impact
		}
	}
	return best, bestImpact
}

// Dates returns the picked dates in selection order.
func Dates(picks []Pick) []calendar.Date {
	dates := make([]calendar.Date, len(picks))
	for i, p := range picks {
		dates[i] = p.Date
	}
	return dates
}
