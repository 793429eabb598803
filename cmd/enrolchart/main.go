package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"enrolcli/internal/chart"
	"enrolcli/internal/config"
	"enrolcli/internal/exporter"
	"enrolcli/internal/infrastructure"
	"enrolcli/internal/services"
	"enrolcli/internal/validation"
)

func main() {
	epoch := flag.String("epoch", "", "date from which all other days are compared, eg start of semester, such as 28-JUL-2014 (required)")
	output := flag.String("output", "", "name of output file for the chart in SVG format")
	title := flag.String("title", "", "title text for output chart")
	low := flag.Int("low", -1, "lower bound of days before epoch to start counting")
	high := flag.Int("high", -1, "upper bound of days after epoch to end counting")
	label := flag.Bool("label", false, "annotate the chart with the maximum and current enrolment numbers")
	labelX := flag.Float64("labelx", 30, "x position for label")
	labelY := flag.Float64("labely", 30, "y position for label")
	seriesOut := flag.String("series", "", "optional CSV file to write the computed series to")
	flag.Parse()

	if *epoch == "" || flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s --epoch DATE [options] INPUT_FILE\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{}
	}

	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
	}
	defer infrastructure.CloseLogFile()

	// Flags win over config file and environment.
	if *output == "" {
		*output = valueOr(cfg.Chart.Output, config.DefaultChartOutput)
	}
	if *title == "" {
		*title = valueOr(cfg.Chart.Title, config.DefaultChartTitle)
	}
	if *low < 0 {
		*low = boundOr(cfg.Chart.Low, config.DefaultLowBound)
	}
	if *high < 0 {
		*high = boundOr(cfg.Chart.High, config.DefaultHighBound)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger := infrastructure.LoggerWithContext(ctx)
	logger.InfoContext(ctx, "plotting enrolments",
		slog.String("input", inputPath),
		slog.String("epoch", *epoch),
		slog.String("output", *output),
		slog.Int("low", *low),
		slog.Int("high", *high))

	if err := validation.NewFileValidator(logger).ValidateOutputPath(*output); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	svc := services.NewEnrolmentService(logger)
	result, err := svc.BuildSeries(ctx, services.SeriesRequest{
		InputPath: inputPath,
		EpochDate: *epoch,
		Low:       *low,
		High:      *high,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to build series", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	chartCfg := chart.Config{
		Title:  *title,
		XLabel: "Days from " + *epoch,
		Label:  *label,
		LabelX: *labelX,
		LabelY: *labelY,
	}
	if result.OK {
		chartCfg.Summary = &result.Summary
	}
	err = chart.WriteSVG(result.Series, chartCfg, *output)
	if err != nil {
		logger.ErrorContext(ctx, "failed to write chart", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if *seriesOut != "" {
		if err := exporter.NewSeriesExporter().ExportSeries(result.Series, *seriesOut); err != nil {
			logger.ErrorContext(ctx, "failed to export series", slog.String("error", err.Error()))
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}

	if result.OK {
		fmt.Printf("maximum enrolment: %d\n", result.Summary.Maximum)
		fmt.Printf("current enrolment: %d\n", result.Summary.Current)
	} else {
		fmt.Println("no enrolment data in the selected window")
	}

	logger.InfoContext(ctx, "chart written",
		slog.String("output", *output),
		slog.Int("points", result.Series.Len()))
}

func valueOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func boundOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}
