package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"TrendCast/internal/di"
	"TrendCast/internal/usecase"
	"TrendCast/pkg/config"
	applogger "TrendCast/pkg/logger"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	dataPath := flag.String("data", "", "CSV file with date,value observations (overrides configured source)")
	window := flag.Int("window", 0, "moving-average window (overrides config)")
	horizon := flag.Int("horizon", 0, "forecast horizon (overrides config)")
	history := flag.Int("history", 0, "history rows in the summary table (overrides config)")
	serve := flag.Bool("serve", false, "run the dashboard server instead of printing a one-shot report")
	flag.Parse()

	cfg := loadConfig(*configPath)
	applyFlags(cfg, *dataPath, *window, *horizon, *history)

	if *serve {
		runServer(cfg)
		return
	}

	if err := printReport(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to built-in defaults
// when the file does not exist so the CLI works out of the box.
func loadConfig(path string) *config.Config {
	cfg, err := config.LoadWithEnv(path)
	if err == nil {
		return cfg
	}
	if errors.Is(err, os.ErrNotExist) {
		return config.Default()
	}
	log.Fatalf("config load failed: %v", err)
	return nil
}

func applyFlags(cfg *config.Config, dataPath string, window, horizon, history int) {
	if dataPath != "" {
		cfg.Source.Type = "csv"
		cfg.Source.CSVPath = dataPath
	}
	if window > 0 {
		cfg.Forecast.Window = window
	}
	if horizon > 0 {
		cfg.Forecast.Horizon = horizon
	}
	if history > 0 {
		cfg.Forecast.History = history
	}
}

func runServer(cfg *config.Config) {
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

// printReport builds one report from the configured source and writes
// the plain-text summary to stdout.
func printReport(cfg *config.Config) error {
	logger, err := applogger.New(&applogger.Config{
		Level:  "error",
		Format: "console",
		Output: "stderr",
	})
	if err != nil {
		return err
	}

	chClient, err := di.ProvideClickHouseClient(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if chClient != nil {
			_ = chClient.Close()
		}
	}()

	src, err := di.ProvideSeriesSource(cfg, chClient)
	if err != nil {
		return err
	}

	builder := usecase.NewReportBuilder(src, di.ProvideRenderer(cfg), nil, di.ProvideMetrics(), logger, 0)
	report, err := builder.Build(context.Background(), usecase.BuildParams{
		Window:  cfg.Forecast.Window,
		Horizon: cfg.Forecast.Horizon,
		History: cfg.Forecast.History,
	})
	if err != nil {
		return err
	}

	fmt.Print(usecase.RenderText(report))
	return nil
}
