package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/holidayopt/internal/scheduler"
	"github.com/wonny/holidayopt/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the cache warm-up scheduler",
	Long: `Starts the scheduler or manages its jobs.

Subcommands:
  start   - start the scheduler
  list    - list registered jobs
  run     - run a job immediately

Example:
  go run ./cmd/holidayopt scheduler start
  go run ./cmd/holidayopt scheduler run warm_cache`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler",
		Long: `Starts the scheduler with every registered job.

Registered jobs:
- warm_cache: WARM_SCHEDULE (default 3 AM daily), precomputes results for the
  current and next year for each of WARM_COUNTS

Results only persist when REDIS_ENABLED=true. Stop with Ctrl+C.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run a job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJobNow,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	sched, svc, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer svc.Close()

	sched.Start()

	out := cmd.OutOrStdout()
	PrintSuccess(out, "Scheduler started")
	fmt.Fprintln(out, "\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Fprintf(out, "  - %s\n", jobName)
	}
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, svc, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Registered jobs:")
	for name, stats := range sched.GetJobStats() {
		fmt.Fprintf(out, "  - %s (%s)\n", name, stats.Schedule)
	}
	return nil
}

func runJobNow(cmd *cobra.Command, args []string) error {
	sched, svc, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer svc.Close()

	result, err := sched.RunJobSync(args[0])
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("job %s failed: %s", result.JobName, result.Error)
	}

	PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Job %s completed in %.2fs", result.JobName, result.Duration.Seconds()))
	return nil
}

// initScheduler wires the engine into the scheduler and registers all jobs
func initScheduler() (*scheduler.Scheduler, *services, error) {
	e, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}

	svc, err := newServices(context.Background(), e)
	if err != nil {
		return nil, nil, err
	}
	if !svc.redis.Enabled() {
		e.log.Warn("Redis disabled: warm-up results are not kept")
	}

	sched := scheduler.New(e.log)
	warm := jobs.NewWarmCacheJob(svc.engine, e.cfg.Scheduler.WarmCounts, e.cfg.Scheduler.WarmSchedule, e.log)
	if err := sched.AddJob(warm); err != nil {
		svc.Close()
		return nil, nil, err
	}

	return sched, svc, nil
}
