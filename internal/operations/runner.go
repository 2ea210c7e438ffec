package operations

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mplosser/data-fry9/internal/archive"
	"github.com/mplosser/data-fry9/internal/config"
	"github.com/mplosser/data-fry9/internal/dataprocessing"
	apperrors "github.com/mplosser/data-fry9/internal/errors"
	"github.com/mplosser/data-fry9/internal/exporter"
	"github.com/mplosser/data-fry9/internal/files"
	"github.com/mplosser/data-fry9/internal/infrastructure"
	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

// Runner orchestrates one conversion run: archive normalization, input
// discovery and period resolution, parallel dispatch of per-file pipelines,
// and aggregation into the run report.
type Runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.ConversionMetrics
	writer  *exporter.ParquetWriter
}

// NewRunner wires a runner from the loaded configuration and telemetry
// providers.
func NewRunner(cfg *config.Config, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var tracer trace.Tracer
	var metrics *infrastructure.ConversionMetrics
	if providers != nil {
		tracer = providers.Tracer
		m, err := infrastructure.CreateConversionMetrics(providers.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create conversion metrics: %w", err)
		}
		metrics = m
	}

	return &Runner{
		cfg:     cfg,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
		writer:  exporter.NewParquetWriter(cfg.Paths.OutputDir, logger),
	}, nil
}

// Run executes the full conversion batch. Only setup failures (unreadable
// input directory, zero processable inputs) return an error; every per-file
// and per-record failure is recovered into the report.
func (r *Runner) Run(ctx context.Context) (*RunReport, error) {
	report := NewRunReport()
	logger := r.logger.With(slog.String("run_id", report.RunID))

	if r.tracer != nil {
		var span trace.Span
		ctx, span = r.tracer.Start(ctx, "conversion.run",
			trace.WithAttributes(attribute.String("run.id", report.RunID)))
		defer span.End()
	}

	inputDir := r.cfg.Paths.InputDir
	if info, err := os.Stat(inputDir); err != nil || !info.IsDir() {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("input directory %s", inputDir))
	}

	logger.Info("starting conversion run",
		slog.String("input_dir", inputDir),
		slog.String("output_dir", r.cfg.Paths.OutputDir),
		slog.Int("workers", r.cfg.Processing.EffectiveWorkers()))

	// Stage 1: archive normalization. Per-archive failures are skips.
	normalizer := archive.NewNormalizer(logger)
	extractions, archiveErrs := normalizer.Normalize(inputDir)
	for _, err := range archiveErrs {
		logger.Warn("archive skipped", slog.String("error", err.Error()))
		report.Skip(err)
	}
	for _, e := range extractions {
		if e.Skipped {
			report.ArchivesSkipped++
		} else {
			report.ArchivesExtracted++
		}
	}

	// Stage 2: discovery and filename-based period resolution.
	filings, err := r.discoverFilings(inputDir, logger, report)
	if err != nil {
		return nil, err
	}
	if len(filings) == 0 {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("processable filing files in %s", inputDir))
	}

	// Stage 3: parallel fan-out, one independent pipeline per file.
	dispatcher := NewDispatcher(r.cfg.Processing.EffectiveWorkers(), logger)
	report.Files = dispatcher.Run(ctx, filings, r.convertFiling)

	for _, result := range report.Files {
		if result.Failed() {
			logger.Warn("file failed",
				slog.String("file", result.Filing.Name),
				slog.String("error", result.Err.Error()))
			report.Skip(result.Err)
		}
		r.recordMetrics(ctx, result)
	}

	report.FinishedAt = time.Now()
	logger.Info("conversion run finished",
		slog.Int("files_processed", report.FilesProcessed()),
		slog.Int("files_failed", report.FilesFailed()),
		slog.Int("partitions_written", report.PartitionsWritten()),
		slog.Int("records_read", report.RecordsRead()),
		slog.Int("records_excluded", report.RecordsExcluded()),
		slog.Duration("duration", report.Duration()))

	return report, nil
}

// discoverFilings lists the delimited input files and resolves each period
// from its filename. Files matching no convention are skipped; files whose
// period falls outside the configured year bounds are filtered.
func (r *Runner) discoverFilings(inputDir string, logger *slog.Logger, report *RunReport) ([]domain.RawFiling, error) {
	discovery := files.NewDiscovery("")
	candidates, err := discovery.FindFilingFiles(inputDir)
	if err != nil {
		return nil, apperrors.NewConfigError(
			fmt.Sprintf("failed to list input directory %s", inputDir), err)
	}
	report.FilesDiscovered = len(candidates)

	var filings []domain.RawFiling
	for _, candidate := range candidates {
		period, err := dataprocessing.ResolvePeriod(candidate.Name)
		if err != nil {
			logger.Warn("file skipped",
				slog.String("file", candidate.Name),
				slog.String("error", err.Error()))
			report.Skip(err)
			continue
		}
		if !r.cfg.Processing.IncludesYear(period.Year) {
			report.FilesFiltered++
			continue
		}
		filings = append(filings, domain.RawFiling{
			Path:   candidate.Path,
			Name:   candidate.Name,
			Period: period,
			Size:   candidate.Size,
		})
	}

	return filings, nil
}

// convertFiling is the per-file pipeline one worker runs: sniff, parse,
// classify, project, then write one partition per populated filer type.
func (r *Runner) convertFiling(ctx context.Context, filing domain.RawFiling) FileResult {
	start := time.Now()

	if r.tracer != nil {
		var span trace.Span
		ctx, span = r.tracer.Start(ctx, "conversion.file",
			trace.WithAttributes(
				attribute.String("file.name", filing.Name),
				attribute.String("file.period", filing.Period.String())))
		defer span.End()
	}

	result := FileResult{Filing: filing}
	defer func() { result.Duration = time.Since(start) }()

	conversion, err := dataprocessing.ConvertFile(filing, r.logger)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		result.Err = err
		return result
	}

	result.RecordsRead = conversion.RecordsRead
	result.Unclassifiable = conversion.Unclassifiable
	result.IdentifierDrops = conversion.IdentifierDrops
	result.SeparatorRows = conversion.SeparatorRows
	result.MalformedRows = conversion.MalformedRows

	if len(conversion.Sets) == 0 {
		result.Err = apperrors.NewFormatError(
			fmt.Sprintf("no records classified in %s", filing.Name), nil)
		return result
	}

	for _, set := range conversion.Sets {
		partition, err := r.writer.WritePartition(set)
		if err != nil {
			// Fatal for this partition only; partitions already written
			// for the file are kept and reported.
			infrastructure.RecordError(ctx, err)
			result.Err = err
			return result
		}
		result.Partitions = append(result.Partitions, partition)
	}

	r.logger.Info("file converted",
		slog.String("file", filing.Name),
		slog.String("period", filing.Period.String()),
		slog.Int("records", result.RecordsRead),
		slog.Int("excluded", result.Unclassifiable+result.IdentifierDrops),
		slog.Int("partitions", len(result.Partitions)),
		slog.Duration("duration", time.Since(start)))

	return result
}

// recordMetrics feeds one task outcome into the run instruments.
func (r *Runner) recordMetrics(ctx context.Context, result FileResult) {
	if r.metrics == nil {
		return
	}

	reason := ""
	if result.Failed() {
		reason = skipReason(result.Err)
	}
	infrastructure.RecordFileMetrics(ctx, r.metrics, result.Duration, !result.Failed(), reason)
	r.metrics.RecordsRead.Add(ctx, int64(result.RecordsRead))
	r.metrics.RecordsExcluded.Add(ctx, int64(result.Unclassifiable+result.IdentifierDrops))
	r.metrics.PartitionsWritten.Add(ctx, int64(len(result.Partitions)))
}
