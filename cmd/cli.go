package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpin "runplanner/internal/adapters/in/http"
	"runplanner/internal/adapters/out/postgres"
	"runplanner/internal/adapters/out/syncbus"
	"runplanner/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewRootCommand builds the runplanner CLI.
func NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "runplanner",
		Short:         "Order-to-run assignment and capacity planning service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "dotenv file read before the environment")

	root.AddCommand(
		newServeCommand(&envFile),
		newMigrateCommand(&envFile),
		newAuditCommand(&envFile),
	)
	return root
}

func newServeCommand(envFile *string) *cobra.Command {
	var migrate bool
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, sync transport and audit job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := LoadConfig(*envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return serve(ctx, cfg, migrate, newLogger())
		},
	}
	c.Flags().BoolVar(&migrate, "migrate", false, "apply schema migrations before serving")
	return c
}

func newMigrateCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(*envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			db, err := postgres.Open(cfg.DSN())
			if err != nil {
				return err
			}
			defer func() { _ = closeDB(db) }()

			if err = postgres.Migrate(db.WithContext(cmd.Context())); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			newLogger().Info("schema is up to date")
			return nil
		},
	}
}

func newAuditCommand(envFile *string) *cobra.Command {
	var failOnProblems bool
	c := &cobra.Command{
		Use:   "audit",
		Short: "Run the consistency audit once and print the report as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(*envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			// The audit only reads; it never needs a remote sync transport.
			cfg.SyncTransport = SyncMemory

			root, err := openRoot(cfg, newLogger())
			if err != nil {
				return err
			}
			defer root.Close()

			report, err := root.CreateAuditJob().RunOnce(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err = enc.Encode(report); err != nil {
				return err
			}
			if failOnProblems && len(report.Inconsistencies)+len(report.OverloadedRuns) > 0 {
				return fmt.Errorf("audit found %d inconsistencies and %d overloaded runs",
					len(report.Inconsistencies), len(report.OverloadedRuns))
			}
			return nil
		},
	}
	c.Flags().BoolVar(&failOnProblems, "fail-on-problems", false, "exit non-zero when the audit finds problems")
	return c
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func openRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	zones, err := LoadZones(cfg.ZonesFile)
	if err != nil {
		return nil, err
	}
	db, err := postgres.Open(cfg.DSN())
	if err != nil {
		return nil, err
	}
	root, err := NewCompositionRoot(cfg, db, zones, logger)
	if err != nil {
		_ = closeDB(db)
		return nil, err
	}
	// Closers run newest first, so the pool goes last.
	root.closers = append([]func(){func() { _ = closeDB(db) }}, root.closers...)
	return root, nil
}

func serve(ctx context.Context, cfg Config, migrate bool, logger *slog.Logger) error {
	root, err := openRoot(cfg, logger)
	if err != nil {
		return err
	}
	defer root.Close()

	if migrate {
		if err = postgres.Migrate(root.gormDB.WithContext(ctx)); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	e, err := httpin.NewEcho(ctx, root.CreateHTTPServer(), root.Registry())
	if err != nil {
		return err
	}

	manager := jobs.NewJobManager(root.CreateAuditJob())
	if err = manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	errc := make(chan error, 2)
	go func() {
		logger.InfoContext(ctx, "http server listening", "port", cfg.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	go func() {
		if err := root.Run(ctx); err != nil {
			errc <- fmt.Errorf("sync transport: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err = <-errc:
		logger.ErrorContext(ctx, "shutting down", "error", err)
	}

	if shutdownErr := shutdownHTTP(e, root.hub, cfg.ShutdownTimeout); shutdownErr != nil {
		logger.Error("http shutdown", "error", shutdownErr)
	}
	return err
}

// shutdownHTTP closes the hub first so open event streams end, then waits for
// the remaining requests to drain.
func shutdownHTTP(e *echo.Echo, hub *syncbus.Hub, timeout time.Duration) error {
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return e.Shutdown(ctx)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
