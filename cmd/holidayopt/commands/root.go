package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/holidayopt/internal/calendar"
	"github.com/wonny/holidayopt/pkg/config"
	"github.com/wonny/holidayopt/pkg/logger"
)

var (
	// Global flags
	rulesFile string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "holidayopt",
	Short: "Voluntary holiday optimizer",
	Long: `holidayopt places voluntary holidays so that, averaged over every day of the
year, the wait until the next holiday is as short as possible.

Fixed holidays come from a rule set (US federal by default, or a YAML file
given with --rules). Voluntary holidays are chosen greedily (fast) or by
exhaustive search (optimal, only practical for one or two dates).

Usage:
  go run ./cmd/holidayopt [command]

Examples:
  go run ./cmd/holidayopt optimize 2025 3
  go run ./cmd/holidayopt optimize 2024 1 --algorithm exhaustive
  go run ./cmd/holidayopt holidays 2025 --rules config/rules/de_nrw.yaml
  go run ./cmd/holidayopt api --port 8089`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "holiday rules YAML file (default: HOLIDAY_RULES_FILE or built-in US federal rules)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// env is what every command needs before it can do work
type env struct {
	cfg *config.Config
	log *logger.Logger
	cal *calendar.Calendar
}

// bootstrap loads config, creates the logger and resolves the holiday calendar
func bootstrap() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if rulesFile != "" {
		cfg.Optimizer.RulesFile = rulesFile
	}

	log := logger.New(cfg)

	cal := calendar.Default()
	if cfg.Optimizer.RulesFile != "" {
		cal, err = calendar.LoadRules(cfg.Optimizer.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		log.WithFields(map[string]interface{}{
			"file":    cfg.Optimizer.RulesFile,
			"ruleset": cal.ID(),
			"rules":   len(cal.Rules()),
		}).Debug("Loaded holiday rules")
	}

	return &env{cfg: cfg, log: log, cal: cal}, nil
}
