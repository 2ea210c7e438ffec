package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/parquet-go/parquet-go"

	apperrors "github.com/mplosser/data-fry9/internal/errors"
	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

// ParquetWriter persists projected record sets as partitioned Parquet files,
// one file per (filer type, period) pair under the output directory.
type ParquetWriter struct {
	outputDir string
	logger    *slog.Logger
}

// NewParquetWriter creates a new partition writer rooted at outputDir.
func NewParquetWriter(outputDir string, logger *slog.Logger) *ParquetWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParquetWriter{outputDir: outputDir, logger: logger}
}

// PartitionPath returns the output path for one (filer type, period) pair.
func (w *ParquetWriter) PartitionPath(ft domain.FilerType, period domain.Period) string {
	return filepath.Join(w.outputDir, ft.Dir(), period.String()+".parquet")
}

// WritePartition writes one partition file with Snappy compression and a
// stable column order: RSSD_ID, REPORTING_PERIOD, then the variable columns
// alphabetically. An existing file at the partition path is overwritten.
// Writes are not atomic; a crash mid-write can leave a partial file behind,
// which the next run overwrites.
func (w *ParquetWriter) WritePartition(set *domain.ProjectedSet) (domain.PartitionResult, error) {
	path := w.PartitionPath(set.FilerType, set.Period)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return domain.PartitionResult{}, apperrors.NewStorageError(
			fmt.Sprintf("failed to create partition directory for %s", set.FilerType), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return domain.PartitionResult{}, apperrors.NewStorageError(
			fmt.Sprintf("failed to create partition file %s", path), err)
	}

	counted := &countingDigestWriter{w: f, digest: xxhash.New()}
	schema := partitionSchema(set.FilerType, set.Variables)
	writer := parquet.NewGenericWriter[any](counted, schema,
		parquet.Compression(&parquet.Snappy))

	builder := parquet.NewRowBuilder(schema)
	periodDays := set.Period.EpochDays()

	for _, record := range set.Records {
		builder.Reset()
		builder.Add(0, parquet.ValueOf(record.RSSDID))
		builder.Add(1, parquet.ValueOf(periodDays))
		for i, value := range record.Values {
			if value != nil {
				builder.Add(2+i, parquet.ValueOf(*value))
			}
		}
		if _, err := writer.WriteRows([]parquet.Row{builder.Row()}); err != nil {
			f.Close()
			return domain.PartitionResult{}, apperrors.NewStorageError(
				fmt.Sprintf("failed to write rows to %s", path), err)
		}
	}

	if err := writer.Close(); err != nil {
		f.Close()
		return domain.PartitionResult{}, apperrors.NewStorageError(
			fmt.Sprintf("failed to finalize %s", path), err)
	}
	if err := f.Close(); err != nil {
		return domain.PartitionResult{}, apperrors.NewStorageError(
			fmt.Sprintf("failed to close %s", path), err)
	}

	result := domain.PartitionResult{
		FilerType: set.FilerType,
		Period:    set.Period,
		Path:      path,
		Records:   len(set.Records),
		Variables: len(set.Variables),
		Bytes:     counted.n,
		Digest:    counted.digest.Sum64(),
	}

	w.logger.Info("wrote partition",
		slog.String("filer_type", string(set.FilerType)),
		slog.String("period", set.Period.String()),
		slog.Int("records", result.Records),
		slog.Int("variables", result.Variables),
		slog.Int64("bytes", result.Bytes))

	return result, nil
}

// partitionSchema builds the Parquet schema for one filer type's partition.
// The identifier is a required INT64, the period a required DATE, and every
// variable an optional UTF-8 string.
func partitionSchema(ft domain.FilerType, variables []string) *parquet.Schema {
	group := parquet.Group{
		domain.IdentifierColumn: parquet.Int(64),
		domain.PeriodColumn:     parquet.Date(),
	}
	order := make([]string, 0, len(variables)+2)
	order = append(order, domain.IdentifierColumn, domain.PeriodColumn)
	for _, name := range variables {
		group[name] = parquet.Optional(parquet.String())
		order = append(order, name)
	}

	return parquet.NewSchema(ft.Dir(), orderedGroup{Group: group, order: order})
}

// orderedGroup overrides the alphabetical field order of parquet.Group so
// the identifier and period columns always lead the schema. Every other
// Node method stays the library's own.
type orderedGroup struct {
	parquet.Group
	order []string
}

func (g orderedGroup) Fields() []parquet.Field {
	byName := make(map[string]parquet.Field, len(g.Group))
	for _, field := range g.Group.Fields() {
		byName[field.Name()] = field
	}
	fields := make([]parquet.Field, 0, len(g.order))
	for _, name := range g.order {
		fields = append(fields, byName[name])
	}
	return fields
}

// countingDigestWriter tees writes into a running xxhash64 digest and byte
// count on their way to the underlying writer.
type countingDigestWriter struct {
	w      io.Writer
	digest *xxhash.Digest
	n      int64
}

func (c *countingDigestWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.digest.Write(p[:n])
		c.n += int64(n)
	}
	return n, err
}

// PartitionRecord is one row of a partition file read back into memory.
type PartitionRecord struct {
	RSSDID int64
	Period time.Time
	// Values is aligned to the variable columns of the partition; nil marks
	// a null.
	Values []*string
}

// PartitionContents holds a partition file read back into memory, used by
// the round-trip tests and available to downstream consumers.
type PartitionContents struct {
	// Columns is the full stored column order, identifier and period first.
	Columns []string
	Records []PartitionRecord
}

// ReadPartition reads a partition file back into memory.
func ReadPartition(path string) (*PartitionContents, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(
			fmt.Sprintf("failed to open partition %s", path), err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, apperrors.NewStorageError(
			fmt.Sprintf("failed to stat partition %s", path), err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, apperrors.NewStorageError(
			fmt.Sprintf("failed to read partition %s", path), err)
	}

	schema := pf.Schema()
	contents := &PartitionContents{}
	for _, field := range schema.Fields() {
		contents.Columns = append(contents.Columns, field.Name())
	}

	for _, rowGroup := range pf.RowGroups() {
		rows := rowGroup.Rows()
		buf := make([]parquet.Row, 64)
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				record, decodeErr := decodeRow(row)
				if decodeErr != nil {
					rows.Close()
					return nil, decodeErr
				}
				contents.Records = append(contents.Records, record)
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rows.Close()
				return nil, apperrors.NewStorageError(
					fmt.Sprintf("failed to read rows from %s", path), err)
			}
		}
		rows.Close()
	}

	return contents, nil
}

// decodeRow converts one stored row back to its logical values.
func decodeRow(row parquet.Row) (PartitionRecord, error) {
	if len(row) < 2 {
		return PartitionRecord{}, apperrors.NewStorageError("partition row is too short", nil)
	}

	record := PartitionRecord{
		RSSDID: row[0].Int64(),
		Period: time.Unix(int64(row[1].Int32())*86400, 0).UTC(),
	}
	for _, value := range row[2:] {
		if value.IsNull() {
			record.Values = append(record.Values, nil)
			continue
		}
		s := value.String()
		record.Values = append(record.Values, &s)
	}
	return record, nil
}
