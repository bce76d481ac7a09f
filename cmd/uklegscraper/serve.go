package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/coolbeans/ukleg-register/pkg/telemetry"
)

const shutdownTimeout = 10 * time.Second

// NewServeObservabilityCmd creates the serve-observability subcommand.
func NewServeObservabilityCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-observability",
		Short: "Serve /metrics and /healthz/* until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeObservability(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9090", "address to listen on")
	return cmd
}

func runServeObservability(cmd *cobra.Command, addr string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	readiness := telemetry.ReadinessChecker(func() bool { return true })
	if url := os.Getenv("DATABASE_URL"); url != "" {
		pool, err := pgxpool.New(ctx, url)
		if err != nil {
			return oops.Code("DB_CONNECT_FAILED").Wrap(err)
		}
		defer pool.Close()
		readiness = telemetry.PoolReadinessChecker(pool)
	}

	server := telemetry.NewServer(addr, readiness, logger())
	if err := server.Start(); err != nil {
		return oops.Code("TELEMETRY_START_FAILED").Wrap(err)
	}

	cmd.Printf("observability server listening on %s\n", server.Addr())
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	return server.Stop(shutdownCtx)
}
