package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mplosser/data-fry9/internal/config"
	"github.com/mplosser/data-fry9/internal/infrastructure"
	"github.com/mplosser/data-fry9/internal/operations"
	"github.com/mplosser/data-fry9/pkg/contracts"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to YAML config file (defaults to config.yaml if present)")
	inputDir := flag.String("in", "", "input directory holding bhcf*.csv and bhcf*.zip files")
	outputDir := flag.String("out", "", "output directory for partitioned Parquet files")
	workers := flag.Int("workers", 0, "worker pool size; -1 selects one per CPU (overrides config when set)")
	noParallel := flag.Bool("no-parallel", false, "process files strictly sequentially")
	startYear := flag.Int("start-year", 0, "skip reporting periods before this year")
	endYear := flag.Int("end-year", 0, "skip reporting periods after this year")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return 0
	}

	// Optional .env next to the binary; ignore absence.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}
	applyFlags(cfg, *inputDir, *outputDir, *workers, *noParallel, *startYear, *endYear, *logLevel)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization failed: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		logger.Error("telemetry initialization failed", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := operations.NewRunner(cfg, logger, providers)
	if err != nil {
		logger.Error("runner initialization failed", slog.String("error", err.Error()))
		return 1
	}

	report, err := runner.Run(ctx)
	if err != nil {
		logger.Error("conversion run failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	printSummary(report)

	if !report.Succeeded() {
		fmt.Fprintln(os.Stderr, "no partitions written")
		return 1
	}
	return 0
}

// applyFlags overlays explicitly set command-line flags onto the loaded
// configuration; flags take precedence over file and environment values.
func applyFlags(cfg *config.Config, inputDir, outputDir string, workers int, noParallel bool, startYear, endYear int, logLevel string) {
	if inputDir != "" {
		cfg.Paths.InputDir = inputDir
	}
	if outputDir != "" {
		cfg.Paths.OutputDir = outputDir
	}
	if workers != 0 {
		cfg.Processing.Workers = workers
	}
	if noParallel {
		cfg.Processing.Workers = 0
	}
	if startYear != 0 {
		cfg.Processing.StartYear = startYear
	}
	if endYear != 0 {
		cfg.Processing.EndYear = endYear
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
}

func printSummary(report *operations.RunReport) {
	fmt.Printf("%s\n", contracts.GetVersionString())
	fmt.Printf("run %s finished in %s\n", report.RunID, report.Duration().Round(time.Millisecond))

	if first, last, ok := report.PeriodRange(); ok {
		fmt.Printf("periods:    %s - %s\n", first, last)
	}
	fmt.Printf("archives:   %d extracted, %d already present\n",
		report.ArchivesExtracted, report.ArchivesSkipped)
	fmt.Printf("files:      %d processed, %d failed, %d filtered\n",
		report.FilesProcessed(), report.FilesFailed(), report.FilesFiltered)
	for reason, count := range report.SkippedFiles {
		fmt.Printf("  skipped %s: %d\n", reason, count)
	}
	fmt.Printf("records:    %d read, %d excluded\n",
		report.RecordsRead(), report.RecordsExcluded())
	fmt.Printf("partitions: %d written\n", report.PartitionsWritten())
}
