package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/holidayopt/internal/api"
	"github.com/wonny/holidayopt/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                                   - Health check
  GET  /api/holidays/{year}                      - Fixed holidays
  GET  /api/distance/{year}                      - Baseline distance table
  GET  /api/optimize?year=&count=&algorithm=     - Optimization result
  GET  /ws/optimize?year=&count=                 - Websocket: greedy picks, then the result

Example:
  go run ./cmd/holidayopt api
  go run ./cmd/holidayopt api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config, logger, calendar
	e, err := bootstrap()
	if err != nil {
		return err
	}

	// Override port if flag is set
	if apiPort != "" {
		e.cfg.Port = apiPort
	}

	e.log.WithFields(map[string]interface{}{
		"port":    e.cfg.Port,
		"env":     e.cfg.Env,
		"ruleset": e.cal.ID(),
	}).Info("Initializing API server")

	// 2. Redis + engine
	svc, err := newServices(context.Background(), e)
	if err != nil {
		return err
	}
	defer svc.Close()

	// 3. Handlers, router, server
	var limiter handlers.Limiter
	if svc.redis.Enabled() {
		limiter = svc.limiter
	}
	calendarHandler := handlers.NewCalendarHandler(e.cal, e.log)
	optimizeHandler := handlers.NewOptimizeHandler(svc.engine, limiter, e.cfg, e.log)
	router := api.NewRouter(calendarHandler, optimizeHandler, e.cfg, e.log)
	server := api.New(e.cfg, e.cal, e.log, router)

	// 4. Serve until Ctrl+C / SIGTERM, then drain in-flight searches
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	err = server.Run(ctx, func(addr string) {
		PrintSuccess(out, fmt.Sprintf("Serving %s on %s", displayName(e.cal), addr))
		fmt.Fprintln(out, "\nPress Ctrl+C to stop")
	})
	if err != nil {
		return err
	}

	e.log.Info("Server stopped")
	return nil
}
