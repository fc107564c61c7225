package calendar

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRule is returned when a rule definition cannot be resolved for any year.
var ErrInvalidRule = errors.New("invalid holiday rule")

// RuleKind selects how a Rule resolves to a date.
type RuleKind string

const (
	KindFixed        RuleKind = "fixed"         // Month/Day every year
	KindNthWeekday   RuleKind = "nth_weekday"   // Nth Weekday of Month
	KindLastWeekday  RuleKind = "last_weekday"  // last Weekday of Month
	KindOffset       RuleKind = "offset"        // Days after the rule named Base
	KindEasterOffset RuleKind = "easter_offset" // Days after Easter Sunday
)

// Weekday is a time.Weekday that reads and writes its English name in YAML.
type Weekday time.Weekday

// UnmarshalYAML accepts "monday", "Mon", etc.
func (w *Weekday) UnmarshalYAML(value *yaml.Node) error {
	name := strings.ToLower(strings.TrimSpace(value.Value))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			*w = Weekday(d)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown weekday %q", ErrInvalidRule, value.Value)
}

// MarshalYAML writes the weekday name.
func (w Weekday) MarshalYAML() (interface{}, error) {
	return strings.ToLower(time.Weekday(w).String()), nil
}

// Rule defines one recurring holiday.
type Rule struct {
	Name    string   `yaml:"name" json:"name"`
	Kind    RuleKind `yaml:"kind" json:"kind"`
	Month   int      `yaml:"month,omitempty" json:"month,omitempty"`
	Day     int      `yaml:"day,omitempty" json:"day,omitempty"`
	Weekday Weekday  `yaml:"weekday" json:"weekday,omitempty"`
	N       int      `yaml:"n,omitempty" json:"n,omitempty"`
	Base    string   `yaml:"base,omitempty" json:"base,omitempty"`
	Days    int      `yaml:"days,omitempty" json:"days,omitempty"`
}

// RuleSet is a named collection of rules, the unit loaded from a rules file.
type RuleSet struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Rules []Rule `yaml:"rules" json:"rules"`
}

// Hash returns the SHA-256 of the rule set's canonical JSON form.
// Struct fields marshal in a fixed order, so equal rule sets hash equally.
func (s RuleSet) Hash() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("hash rule set: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// resolve computes the rule's date in year. resolved holds the dates of earlier rules
// (needed by offset rules). ok is false when the rule has no date in that year.
func (r Rule) resolve(year int, resolved map[string]Date) (Date, bool) {
	switch r.Kind {
	case KindFixed:
		month := time.Month(r.Month)
		if r.Day > daysInMonth(year, month) {
			return Date{}, false
		}
		return Date{Year: year, Month: month, Day: r.Day}, true
	case KindNthWeekday:
		return NthWeekday(year, time.Month(r.Month), time.Weekday(r.Weekday), r.N)
	case KindLastWeekday:
		return LastWeekday(year, time.Month(r.Month), time.Weekday(r.Weekday)), true
	case KindOffset:
		base, ok := resolved[r.Base]
		if !ok {
			return Date{}, false
		}
		return base.AddDays(r.Days), true
	case KindEasterOffset:
		return Easter(year).AddDays(r.Days), true
	}
	return Date{}, false
}

// alwaysResolves reports whether the rule yields a date inside the year for every year.
func (r Rule) alwaysResolves() bool {
	switch r.Kind {
	case KindFixed:
		return r.Day <= minDaysInMonth(time.Month(r.Month))
	case KindNthWeekday:
		return r.N <= 4
	case KindLastWeekday:
		return true
	}
	return false
}

func (r Rule) validate(earlier map[string]bool) error {
	if r.Name == "" {
		return fmt.Errorf("%w: rule without name", ErrInvalidRule)
	}
	if earlier[r.Name] {
		return fmt.Errorf("%w: duplicate rule name %q", ErrInvalidRule, r.Name)
	}

	switch r.Kind {
	case KindFixed:
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("%w: %s: month %d out of range", ErrInvalidRule, r.Name, r.Month)
		}
		if r.Day < 1 || r.Day > daysInMonth(2000, time.Month(r.Month)) {
			return fmt.Errorf("%w: %s: day %d out of range", ErrInvalidRule, r.Name, r.Day)
		}
	case KindNthWeekday:
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("%w: %s: month %d out of range", ErrInvalidRule, r.Name, r.Month)
		}
		if r.N < 1 || r.N > 5 {
			return fmt.Errorf("%w: %s: n must be 1..5, got %d", ErrInvalidRule, r.Name, r.N)
		}
	case KindLastWeekday:
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("%w: %s: month %d out of range", ErrInvalidRule, r.Name, r.Month)
		}
	case KindOffset:
		if !earlier[r.Base] {
			return fmt.Errorf("%w: %s: base %q must be defined before it", ErrInvalidRule, r.Name, r.Base)
		}
	case KindEasterOffset:
		// Easter falls between Mar 22 and Apr 25; keep the result inside the year.
		if r.Days < -80 || r.Days > 250 {
			return fmt.Errorf("%w: %s: easter offset %d leaves the year", ErrInvalidRule, r.Name, r.Days)
		}
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidRule, r.Name, r.Kind)
	}
	return nil
}

// NthWeekday returns the nth (1-based) weekday of month in year, scanning forward from the
// first of the month. ok is false when the month has fewer than n such weekdays.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) (Date, bool) {
	if n < 1 {
		return Date{}, false
	}
	count := 0
	for day := 1; day <= daysInMonth(year, month); day++ {
		d := Date{Year: year, Month: month, Day: day}
		if d.Weekday() != weekday {
			continue
		}
		count++
		if count == n {
			return d, true
		}
	}
	return Date{}, false
}

// LastWeekday returns the last weekday of month in year, scanning backward from the
// last day of the month.
func LastWeekday(year int, month time.Month, weekday time.Weekday) Date {
	d := Date{Year: year, Month: month, Day: daysInMonth(year, month)}
	for d.Weekday() != weekday {
		d = d.AddDays(-1)
	}
	return d
}

// Easter returns Easter Sunday (Gregorian) using the Meeus/Jones/Butcher algorithm.
func Easter(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1
	return Date{Year: year, Month: time.Month(month), Day: day}
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func minDaysInMonth(month time.Month) int {
	// 2001 is not a leap year, so February reports 28.
	return daysInMonth(2001, month)
}
