package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/csg33k/roster-viewer/internal/adapters/fixedwidth"
	"github.com/csg33k/roster-viewer/internal/adapters/memory"
	"github.com/csg33k/roster-viewer/internal/adapters/pdf"
	sqliteadapter "github.com/csg33k/roster-viewer/internal/adapters/sqlite"
	"github.com/csg33k/roster-viewer/internal/adapters/xlsx"
	"github.com/csg33k/roster-viewer/internal/config"
	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/handlers"
	"github.com/csg33k/roster-viewer/internal/logger"
	"github.com/csg33k/roster-viewer/internal/ports"
	"github.com/csg33k/roster-viewer/internal/seed"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, envErr := config.Load()
	if err := cfg.ApplyFlags(args, os.Stderr); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logCloser, err := logger.InitLogging(cfg.LogLevel, cfg.LogFilePath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if envErr != nil {
		logger.WarnLog(ctx, "error loading .env file: %v", envErr)
	}

	roster, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(ctx, cfg.Backend, roster.Employees)
	if err != nil {
		return err
	}
	defer closeStore.Close()

	h := handlers.New(store, handlers.Options{
		Departments: roster.Departments,
		PageSize:    cfg.PageSize,
	}, pdf.New(), xlsx.New(), fixedwidth.New())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Global().Info().
		Str("addr", cfg.Addr()).
		Str("backend", cfg.Backend).
		Int("employees", len(roster.Employees)).
		Msgf("Employee roster running on http://localhost:%d", cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.InfoLog(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// openStore builds the configured backend holding the seed roster.
func openStore(ctx context.Context, backend string, employees []domain.Employee) (ports.RosterStore, io.Closer, error) {
	switch backend {
	case config.BackendSQLite:
		repo, err := sqliteadapter.New(ctx, employees)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return repo, repo, nil
	default:
		s, err := memory.New(employees)
		if err != nil {
			return nil, nil, fmt.Errorf("load roster: %w", err)
		}
		return s, io.NopCloser(nil), nil
	}
}
