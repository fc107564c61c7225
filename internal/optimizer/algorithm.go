package optimizer

import (
	"fmt"
	"strings"
)

// Algorithm selects how voluntary holidays are chosen.
type Algorithm string

const (
	Greedy     Algorithm = "greedy"     // fast approximation
	Exhaustive Algorithm = "exhaustive" // slow but optimal
)

// ParseAlgorithm accepts "greedy"/"fast" and "exhaustive"/"optimal" (case-insensitive).
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "greedy", "fast":
		return Greedy, nil
	case "exhaustive", "optimal":
		return Exhaustive, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Title is the human-readable algorithm name used in reports.
func (a Algorithm) Title() string {
	switch a {
	case Greedy:
		return "Greedy (fast approximation)"
	case Exhaustive:
		return "Exhaustive (slow but optimal)"
	}
	return string(a)
}

func (a Algorithm) valid() bool {
	return a == Greedy || a == Exhaustive
}
