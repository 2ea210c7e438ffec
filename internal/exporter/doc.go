// Package exporter persists projected FR Y-9 records as partitioned Parquet
// files for the downstream summarizer.
//
// ParquetWriter writes one Snappy-compressed file per (filer type, period)
// pair under the output directory, e.g. y_9c/1986Q3.parquet. The column
// order is stable: RSSD_ID (required INT64), REPORTING_PERIOD (required
// DATE, quarter end), then the variable columns alphabetically as optional
// UTF-8 strings. Existing partition files are overwritten; writes are not
// atomic, which is an accepted limitation of the batch design.
//
// Example usage:
//
//	writer := exporter.NewParquetWriter("data/processed", logger)
//	result, err := writer.WritePartition(set)
//
// ReadPartition reads a partition file back and is what the round-trip and
// idempotence tests are built on.
package exporter
