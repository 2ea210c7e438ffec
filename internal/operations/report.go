package operations

import (
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/mplosser/data-fry9/internal/errors"
	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

// FileResult is the outcome of converting one filing file. Every worker
// task produces exactly one, successful or not.
type FileResult struct {
	Filing     domain.RawFiling
	Partitions []domain.PartitionResult

	RecordsRead     int
	Unclassifiable  int
	IdentifierDrops int
	SeparatorRows   int
	MalformedRows   int

	Duration time.Duration
	Err      error
}

// Failed reports whether the task failed.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// RunReport is the per-run result object every outcome is aggregated into.
// It replaces any ambient global state: concurrent tasks report through
// return values the dispatcher collects after the pool drains.
type RunReport struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	// ArchivesExtracted counts archives unpacked this run;
	// ArchivesSkipped counts archives whose target already existed.
	ArchivesExtracted int
	ArchivesSkipped   int

	// FilesDiscovered counts the delimited text files found after archive
	// normalization; FilesFiltered counts those excluded by the year bounds.
	FilesDiscovered int
	FilesFiltered   int

	// SkippedFiles counts inputs skipped before or during conversion,
	// keyed by error taxonomy (ARCHIVE, FORMAT, NAMING, ...).
	SkippedFiles map[string]int

	// Files holds one entry per dispatched conversion task.
	Files []FileResult
}

// NewRunReport creates an empty report for a starting run.
func NewRunReport() *RunReport {
	return &RunReport{
		RunID:        uuid.New().String(),
		StartedAt:    time.Now(),
		SkippedFiles: make(map[string]int),
	}
}

// Skip records one skipped input under the reason derived from err.
func (r *RunReport) Skip(err error) {
	r.SkippedFiles[skipReason(err)]++
}

// skipReason maps an error to its taxonomy bucket.
func skipReason(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return string(appErr.Type)
	}
	return "OTHER"
}

// FilesProcessed counts tasks that completed successfully.
func (r *RunReport) FilesProcessed() int {
	n := 0
	for _, f := range r.Files {
		if !f.Failed() {
			n++
		}
	}
	return n
}

// FilesFailed counts tasks that ended in an error.
func (r *RunReport) FilesFailed() int {
	n := 0
	for _, f := range r.Files {
		if f.Failed() {
			n++
		}
	}
	return n
}

// FilesSkipped counts inputs skipped before dispatch plus failed tasks.
func (r *RunReport) FilesSkipped() int {
	n := 0
	for _, count := range r.SkippedFiles {
		n += count
	}
	return n
}

// Partitions returns every partition written during the run.
func (r *RunReport) Partitions() []domain.PartitionResult {
	var partitions []domain.PartitionResult
	for _, f := range r.Files {
		partitions = append(partitions, f.Partitions...)
	}
	return partitions
}

// PartitionsWritten counts the partition files written during the run.
func (r *RunReport) PartitionsWritten() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Partitions)
	}
	return n
}

// RecordsRead totals the records read across all tasks.
func (r *RunReport) RecordsRead() int {
	n := 0
	for _, f := range r.Files {
		n += f.RecordsRead
	}
	return n
}

// RecordsExcluded totals the per-record exclusions across all tasks:
// unclassifiable records and records whose identifier could not be coerced.
func (r *RunReport) RecordsExcluded() int {
	n := 0
	for _, f := range r.Files {
		n += f.Unclassifiable + f.IdentifierDrops
	}
	return n
}

// PeriodRange returns the earliest and latest periods among the dispatched
// files, and false when no file was dispatched.
func (r *RunReport) PeriodRange() (first, last domain.Period, ok bool) {
	for _, f := range r.Files {
		p := f.Filing.Period
		if !ok {
			first, last, ok = p, p, true
			continue
		}
		if p.Year < first.Year || (p.Year == first.Year && p.Quarter < first.Quarter) {
			first = p
		}
		if p.Year > last.Year || (p.Year == last.Year && p.Quarter > last.Quarter) {
			last = p
		}
	}
	return first, last, ok
}

// Duration returns the wall-clock duration of the run.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Succeeded reports whether the run produced at least one partition, the
// condition under which the process exits successfully.
func (r *RunReport) Succeeded() bool {
	return r.PartitionsWritten() > 0
}
