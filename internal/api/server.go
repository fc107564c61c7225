package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/wonny/holidayopt/internal/calendar"
	"github.com/wonny/holidayopt/pkg/config"
	"github.com/wonny/holidayopt/pkg/logger"
)

const (
	readTimeout = 15 * time.Second
	idleTimeout = 60 * time.Second

	// exhaustive searches run inside the request
	writeTimeout = 2 * time.Minute

	// in-flight searches get this long to finish on shutdown
	shutdownTimeout = 30 * time.Second
)

// Server serves optimization requests for one holiday calendar
// ⭐ SSOT: API 서버 설정은 이 파일에서만
type Server struct {
	httpServer *http.Server
	cal        *calendar.Calendar
	optimizer  config.OptimizerConfig
	logger     *logger.Logger
}

// New creates a server listening on cfg.Port
func New(cfg *config.Config, cal *calendar.Calendar, log *logger.Logger, router http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		cal:       cal,
		optimizer: cfg.Optimizer,
		logger:    log,
	}
}

// Run listens and serves until ctx is cancelled, then drains in-flight requests.
// ready, if non-nil, receives the bound address once the listener is open.
func (s *Server) Run(ctx context.Context, ready func(addr string)) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"addr":              ln.Addr().String(),
		"ruleset":           s.cal.ID(),
		"ruleset_name":      s.cal.Name(),
		"default_count":     s.optimizer.DefaultCount,
		"default_algorithm": s.optimizer.DefaultAlgorithm,
		"max_combinations":  s.optimizer.MaxCombinations,
	}).Info("Serving holiday optimizer API")
	if ready != nil {
		ready(ln.Addr().String())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops accepting requests and waits for running optimizations
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.WithField("ruleset", s.cal.ID()).Info("Shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
