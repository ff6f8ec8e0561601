package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AI2HU/tubedash/internal/api"
	"github.com/AI2HU/tubedash/internal/logger"
	"github.com/AI2HU/tubedash/internal/scheduler"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API",
	Long:  `Load the snapshot, start the periodic reload scheduler and serve the dashboard HTTP API until interrupted.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config file)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides config file)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Snapshots.Timeout+time.Minute)
	err := dashboard.Reload(loadCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("initial snapshot load failed: %w", err)
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(dashboard, cfg.Scheduler.CronExpr, cfg.Snapshots.Timeout+time.Minute)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	server := api.NewServer(dashboard, cfg.Server.CORSOrigin)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(host, port)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if sched != nil {
			sched.Stop()
		}
		return err
	case <-sigChan:
	}

	logger.Info("Shutting down...")
	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	logger.Info("Goodbye!")
	return nil
}
