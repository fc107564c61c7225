package optimizer

import (
	"time"

	"github.com/wonny/holidayopt/internal/calendar"
	"github.com/wonny/holidayopt/internal/selection"
)

// Request is one optimization run.
type Request struct {
	Year      int
	Count     int
	Algorithm Algorithm
}

// Result is the outcome of an optimization run.
type Result struct {
	Year          int                `json:"year"`
	RulesetID     string             `json:"ruleset"`
	FixedHolidays []calendar.Holiday `json:"fixed_holidays"`
	Count         int                `json:"count"`
	Algorithm     Algorithm          `json:"algorithm"`

	// Totals are summed days-until-next-holiday over the year
	BaselineTotal   int             `json:"baseline_total"`
	Voluntary       []calendar.Date `json:"voluntary"` // sorted by date
	BestTotal       int             `json:"best_total"`
	Improvement     int             `json:"improvement"`
	ImprovementPct  float64         `json:"improvement_pct"`
	AverageDistance float64         `json:"average_distance"`

	// Exhaustive only
	CombinationsEvaluated *int64 `json:"combinations_evaluated,omitempty"`

	// Greedy only: per-round trace in selection order
	Picks []selection.Pick `json:"picks,omitempty"`

	Duration time.Duration `json:"duration_ns"`
	Cached   bool          `json:"cached"`
}
