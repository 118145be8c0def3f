package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"vidpilot/internal/app"
	"vidpilot/pkg/config"
)

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Process the current sheet row once",
	Long: `Run the pipeline a single time: fetch the row under the cursor, build
the script, render the video, publish it and advance the cursor.`,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(onceCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	service, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer service.Close()

	result, err := app.NewPipeline(service).Run(ctx)
	if err != nil {
		return err
	}

	if result.Status == app.StatusSkipped {
		slog.Info("No rows left to process", "row", result.Row)
		return nil
	}

	slog.Info("Done",
		"row", result.Row,
		"product", result.Product,
		"video", result.VideoURL,
		"posts", result.Posts,
	)
	return nil
}
