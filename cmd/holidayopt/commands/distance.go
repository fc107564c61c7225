package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/holidayopt/internal/calendar"
	"github.com/wonny/holidayopt/internal/metric"
)

// distanceCmd represents the distance command
var distanceCmd = &cobra.Command{
	Use:   "distance [year]",
	Short: "Summarize the days-until-next-holiday table of a year",
	Long: `Computes, for every day of the year, the number of days until the next fixed
holiday and prints the total, the average per day and the longest wait.

Example:
  go run ./cmd/holidayopt distance 2024`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDistance,
}

func init() {
	rootCmd.AddCommand(distanceCmd)
}

func runDistance(cmd *cobra.Command, args []string) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}

	year, err := parseYear(args)
	if err != nil {
		return err
	}

	fixed := calendar.Dates(e.cal.HolidaysForYear(year))
	FormatDistance(cmd.OutOrStdout(), year, e.cal, metric.Compute(e.cal, year, fixed))
	return nil
}
