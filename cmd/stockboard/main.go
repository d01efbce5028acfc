package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stockboard/internal"
	"stockboard/internal/domain"
	"stockboard/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// optional .env for STOCKBOARD_ENV / STOCKBOARD_LOG_FILE
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataFlag string

	root := &cobra.Command{
		Use:   "stockboard",
		Short: "dashboard for the stock bot's JSON snapshot",
	}
	root.PersistentFlags().StringVar(&dataFlag, "data", "data/stockinfo.json", "snapshot path or URL")

	root.AddCommand(
		newServeCmd(&dataFlag),
		newRenderCmd(&dataFlag),
		newSnapshotCmd(&dataFlag),
		newHistoryCmd(),
	)
	return root
}

func newServeCmd(dataFlag *string) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := initializeDependencies(*dataFlag)
			handler.Log.Infow("starting api", "port", port, "source", handler.Board.Source.Describe())
			return handler.StartApi(port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "listen port")
	return cmd
}

func newRenderCmd(dataFlag *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "render the dashboard to a static HTML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), *dataFlag, out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "report.html", "output path")
	return cmd
}

func newSnapshotCmd(dataFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot [picks...]",
		Short: "maintain the portfolio snapshot file (daily equity point, positions from picks)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var picks []domain.Pick
			for _, arg := range args {
				picks = append(picks, domain.Pick{Ticker: arg})
			}
			return internal.NewSnapshotManager(*dataFlag).Update(picks)
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var (
		out  string
		days int
	)

	cmd := &cobra.Command{
		Use:   "history <ticker>",
		Short: "seed a single-ticker snapshot from historical closes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now().AddDate(0, 0, -days)
			if out == "" {
				out = filepath.Join("data", internal.SanitizeTicker(args[0])+".json")
			}
			return internal.WriteTickerSeries(internal.NewYahooHistoryService(), args[0], start, out)
		},
	}
	cmd.Flags().IntVar(&days, "days", 365, "days of history")
	cmd.Flags().StringVar(&out, "out", "", "output path (default data/<ticker>.json)")
	return cmd
}

func runRender(ctx context.Context, dataSpec, outPath string) error {
	log := logger.New()
	ctx = context.WithValue(ctx, logger.ContextKey, log)

	handler := initializeDependencies(dataSpec)
	result := handler.Board.Load(ctx)
	if !result.Ok() {
		// still write the page; it carries the error banner like the served one
		log.Warnw("render proceeding with error banner", "error", result.Err)
	}

	if err := os.WriteFile(outPath, []byte(internal.DashboardHTML(result)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	log.Infow("wrote report", "path", outPath)
	return nil
}
