package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vidpilot/internal/app"
	"vidpilot/pkg/config"
)

var runInterval time.Duration

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Cron mode: process one row per interval",
	Long: `Run continuously, processing the next sheet row at a fixed interval.
A failed row is retried on the next tick; runs never overlap.`,
	RunE: runCron,
}

func init() {
	runCmd.Flags().DurationVarP(&runInterval, "interval", "i", 24*time.Hour, "Interval between runs")
	rootCmd.AddCommand(runCmd)
}

func runCron(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	service, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer service.Close()

	pipeline := app.NewPipeline(service)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	slog.Info("Starting cron mode", "interval", runInterval)

	process := func() {
		result, err := pipeline.Run(ctx)
		if err != nil {
			slog.Error("Run failed, row will be retried", "error", err)
			return
		}
		if result.Status == app.StatusSkipped {
			slog.Info("Waiting for new rows", "row", result.Row)
		}
	}

	ticker := time.NewTicker(runInterval)
	defer ticker.Stop()

	process()

	for {
		select {
		case <-sigChan:
			slog.Info("Shutting down...")
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			process()
		}
	}
}
