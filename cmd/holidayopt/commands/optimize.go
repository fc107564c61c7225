package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/holidayopt/internal/optimizer"
)

// optimizeCmd represents the optimize command
var optimizeCmd = &cobra.Command{
	Use:   "optimize [year] [count]",
	Short: "Find the best voluntary holidays for a year",
	Long: `Finds the voluntary holidays that minimize the total number of days until
the next holiday, summed over every day of the year.

year defaults to the current year, count to DEFAULT_VOLUNTARY_COUNT (5).

Algorithms:
  greedy      - one date at a time, fast approximation (alias: fast)
  exhaustive  - every combination, slow but optimal (alias: optimal)

Example:
  go run ./cmd/holidayopt optimize
  go run ./cmd/holidayopt optimize 2025 3
  go run ./cmd/holidayopt optimize 2024 1 --algorithm exhaustive --json`,
	Args: cobra.MaximumNArgs(2),
	RunE: runOptimize,
}

var (
	optimizeAlgorithm string
	optimizeJSON      bool
)

func init() {
	rootCmd.AddCommand(optimizeCmd)

	// Flags
	optimizeCmd.Flags().StringVarP(&optimizeAlgorithm, "algorithm", "a", "", "greedy|exhaustive (default: DEFAULT_ALGORITHM)")
	optimizeCmd.Flags().BoolVar(&optimizeJSON, "json", false, "print the result as JSON")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}

	year, count, err := parseYearCount(args, time.Now().Year(), e.cfg.Optimizer.DefaultCount)
	if err != nil {
		return err
	}

	algoName := optimizeAlgorithm
	if algoName == "" {
		algoName = e.cfg.Optimizer.DefaultAlgorithm
	}
	algo, err := optimizer.ParseAlgorithm(algoName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newServices(ctx, e)
	if err != nil {
		return err
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	if !optimizeJSON {
		fmt.Fprintf(out, "Year: %d, Voluntary Holidays: %d\n", year, count)
	}

	result, err := svc.engine.Optimize(ctx, optimizer.Request{Year: year, Count: count, Algorithm: algo})
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}

	if optimizeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(out, FormatReport(result))
	return nil
}

// parseYearCount reads the optional [year] [count] positional arguments
func parseYearCount(args []string, defaultYear, defaultCount int) (int, int, error) {
	year, count := defaultYear, defaultCount

	if len(args) > 0 {
		y, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year %q: %w", args[0], err)
		}
		year = y
	}
	if len(args) > 1 {
		c, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid count %q: %w", args[1], err)
		}
		count = c
	}

	return year, count, nil
}

// parseYear reads the optional [year] positional argument
func parseYear(args []string) (int, error) {
	year, _, err := parseYearCount(args, time.Now().Year(), 0)
	if err != nil {
		return 0, err
	}
	if year < optimizer.MinYear || year > optimizer.MaxYear {
		return 0, fmt.Errorf("%w: %d", optimizer.ErrInvalidYear, year)
	}
	return year, nil
}
