package commands

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wonny/holidayopt/internal/calendar"
	"github.com/wonny/holidayopt/internal/metric"
	"github.com/wonny/holidayopt/internal/optimizer"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

var numberPrinter = message.NewPrinter(language.English)

// formatThousands renders n with thousands separators, e.g. 62,481
func formatThousands(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

// FormatReport renders an optimization result as the human-readable report
func FormatReport(r *optimizer.Result) string {
	lines := []string{
		fmt.Sprintf("\n=== Holiday Optimization for %d ===\n", r.Year),
		fmt.Sprintf("Fixed holidays (%d):", len(r.FixedHolidays)),
	}
	for _, h := range r.FixedHolidays {
		lines = append(lines, fmt.Sprintf("  - %s: %s", h.Name, h.Date.Display()))
	}

	lines = append(lines,
		fmt.Sprintf("\nBaseline total days-until-holiday: %d", r.BaselineTotal),
		fmt.Sprintf("\nSearching for best %d voluntary holiday(s)...", r.Count),
		fmt.Sprintf("Algorithm: %s\n", r.Algorithm.Title()),
	)

	if r.CombinationsEvaluated != nil {
		lines = append(lines, fmt.Sprintf("Evaluated %s combinations...", formatThousands(*r.CombinationsEvaluated)))
	}

	lines = append(lines,
		"\n"+strings.Repeat("=", 70),
		"\nOptimal voluntary holidays:",
	)
	for _, d := range r.Voluntary {
		lines = append(lines, "  - "+d.Display())
	}

	lines = append(lines,
		"\nResults:",
		fmt.Sprintf("  Baseline total:      %d days", r.BaselineTotal),
		fmt.Sprintf("  Optimized total:     %d days", r.BestTotal),
		fmt.Sprintf("  Improvement:         %d days (%.1f%%)", r.Improvement, r.ImprovementPct),
		fmt.Sprintf("  Average days/day:    %.2f", r.AverageDistance),
	)

	return strings.Join(lines, "\n")
}

// FormatHolidays renders the fixed holidays of a year
func FormatHolidays(w io.Writer, year int, cal *calendar.Calendar) {
	holidays := cal.HolidaysForYear(year)
	fmt.Fprintf(w, "Fixed holidays for %d [%s] (%d):\n", year, displayName(cal), len(holidays))
	for _, h := range holidays {
		fmt.Fprintf(w, "  - %s: %s\n", h.Name, h.Date.Display())
	}
}

// FormatDistance renders the summary of a baseline distance table
func FormatDistance(w io.Writer, year int, cal *calendar.Calendar, table metric.Table) {
	fmt.Fprintf(w, "Days until next holiday in %d (%s)\n", year, displayName(cal))
	PrintKeyValue(w, "Total", fmt.Sprintf("%s days", formatThousands(int64(table.Sum()))), 12)
	PrintKeyValue(w, "Average", fmt.Sprintf("%.2f days/day", table.Mean()), 12)
	PrintKeyValue(w, "Longest wait", fmt.Sprintf("%d days", table.Max()), 12)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(w io.Writer, key string, value string, keyWidth int) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

func displayName(cal *calendar.Calendar) string {
	if cal.Name() != "" {
		return cal.Name()
	}
	return cal.ID()
}
