package commands

import (
	"github.com/spf13/cobra"
)

// holidaysCmd represents the holidays command
var holidaysCmd = &cobra.Command{
	Use:   "holidays [year]",
	Short: "List the fixed holidays of a year",
	Example: `  go run ./cmd/holidayopt holidays 2025
  go run ./cmd/holidayopt holidays 2025 --rules config/rules/de_nrw.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHolidays,
}

func init() {
	rootCmd.AddCommand(holidaysCmd)
}

func runHolidays(cmd *cobra.Command, args []string) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}

	year, err := parseYear(args)
	if err != nil {
		return err
	}

	FormatHolidays(cmd.OutOrStdout(), year, e.cal)
	return nil
}
