// Package calendar derives fixed holiday sets from recurring rules.
//
// The default calendar carries the US federal rule set used by the optimizer:
//
//	holidays := calendar.HolidaysForYear(2024)
//	for _, h := range holidays {
//		fmt.Println(h.Date.Display(), h.Name)
//	}
//
// Custom rule sets can be loaded from YAML with [LoadRules].
package calendar

import (
	"fmt"
	"slices"
	"time"
)

// Calendar resolves a validated RuleSet into holidays per year.
// A Calendar is immutable and safe for concurrent use.
type Calendar struct {
	id      string
	cacheID string
	name    string
	rules   []Rule
}

// USFederalRules is the default rule set.
var USFederalRules = RuleSet{
	ID:   "us-federal",
	Name: "US federal holidays",
	Rules: []Rule{
		{Name: "New Year's Day", Kind: KindFixed, Month: 1, Day: 1},
		{Name: "MLK Day", Kind: KindNthWeekday, Month: 1, Weekday: Weekday(time.Monday), N: 3},
		{Name: "President's Day", Kind: KindNthWeekday, Month: 2, Weekday: Weekday(time.Monday), N: 3},
		{Name: "Memorial Day", Kind: KindLastWeekday, Month: 5, Weekday: Weekday(time.Monday)},
		{Name: "Juneteenth", Kind: KindFixed, Month: 6, Day: 19},
		{Name: "Independence Day", Kind: KindFixed, Month: 7, Day: 4},
		{Name: "Labor Day", Kind: KindNthWeekday, Month: 9, Weekday: Weekday(time.Monday), N: 1},
		{Name: "Thanksgiving", Kind: KindNthWeekday, Month: 11, Weekday: Weekday(time.Thursday), N: 4},
		{Name: "Day After Thanksgiving", Kind: KindOffset, Base: "Thanksgiving", Days: 1},
		{Name: "Christmas Eve", Kind: KindFixed, Month: 12, Day: 24},
		{Name: "Christmas Day", Kind: KindFixed, Month: 12, Day: 25},
	},
}

// defaultCal is the package-level calendar used by top-level functions.
var defaultCal = mustNew(USFederalRules)

// New validates set and returns a Calendar for it.
func New(set RuleSet) (*Calendar, error) {
	if len(set.Rules) == 0 {
		return nil, fmt.Errorf("%w: rule set %q has no rules", ErrInvalidRule, set.ID)
	}

	earlier := make(map[string]bool, len(set.Rules))
	anchored := false
	for _, r := range set.Rules {
		if err := r.validate(earlier); err != nil {
			return nil, err
		}
		earlier[r.Name] = true
		if r.alwaysResolves() {
			anchored = true
		}
	}
	// Every year needs at least one holiday, otherwise "next holiday" is undefined.
	if !anchored {
		return nil, fmt.Errorf("%w: rule set %q needs a fixed, nth_weekday (n<=4) or last_weekday rule",
			ErrInvalidRule, set.ID)
	}

	hash, err := set.Hash()
	if err != nil {
		return nil, err
	}
	// ID 없는 규칙은 내용 해시로 식별
	id, cacheID := set.ID, set.ID+"-"+hash[:12]
	if id == "" {
		id = "custom-" + hash[:12]
		cacheID = id
	}
	rules := make([]Rule, len(set.Rules))
	copy(rules, set.Rules)

	return &Calendar{id: id, cacheID: cacheID, name: set.Name, rules: rules}, nil
}

func mustNew(set RuleSet) *Calendar {
	c, err := New(set)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the US federal calendar.
func Default() *Calendar {
	return defaultCal
}

// ID identifies the rule set.
func (c *Calendar) ID() string { return c.id }

// CacheID identifies the rule set's contents: the ID plus a short content hash, so an
// edited rules file that keeps its id never shares cached results with the old one.
// ⭐ SSOT: 캐시 키의 규칙 식별자는 여기서만
func (c *Calendar) CacheID() string { return c.cacheID }

// Name is the human-readable rule set name.
func (c *Calendar) Name() string { return c.name }

// Rules returns a copy of the calendar's rules in definition order.
func (c *Calendar) Rules() []Rule {
	rules := make([]Rule, len(c.rules))
	copy(rules, c.rules)
	return rules
}

// HolidaysForYear returns the fixed holidays of year, sorted by date.
// When two rules land on the same date the earlier rule keeps it; dates outside year
// (e.g. an offset past Dec 31) are dropped.
func (c *Calendar) HolidaysForYear(year int) []Holiday {
	resolved := make(map[string]Date, len(c.rules))
	seen := make(map[Date]bool, len(c.rules))
	holidays := make([]Holiday, 0, len(c.rules))

	for _, r := range c.rules {
		d, ok := r.resolve(year, resolved)
		if !ok {
			continue
		}
		resolved[r.Name] = d

		if d.Year != year || seen[d] {
			continue
		}
		seen[d] = true
		holidays = append(holidays, Holiday{Name: r.Name, Date: d})
	}

	sortHolidays(holidays)
	return holidays
}

func sortHolidays(holidays []Holiday) {
	slices.SortFunc(holidays, func(a, b Holiday) int {
		return a.Date.Compare(b.Date)
	})
}

// --- Package-level convenience functions ---

// HolidaysForYear returns the US federal holidays of year, sorted by date.
func HolidaysForYear(year int) []Holiday { return defaultCal.HolidaysForYear(year) }
