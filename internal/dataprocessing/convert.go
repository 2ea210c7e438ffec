package dataprocessing

import (
	"log/slog"

	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

// FileConversion is the in-memory outcome of converting one filing file:
// the projected record sets per filer type plus the per-record exclusion
// counts the run report aggregates.
type FileConversion struct {
	Filing    domain.RawFiling
	Delimiter domain.Delimiter
	// Sets holds one entry per filer type that received at least one record.
	Sets []*domain.ProjectedSet

	RecordsRead     int
	Unclassifiable  int
	IdentifierDrops int
	SeparatorRows   int
	MalformedRows   int
}

// ConvertFile runs one filing through the sniff/parse/classify/project
// pipeline. The reporting period comes from the filing name, never from
// file content. Per-record degenerate cases (unclassifiable rows, rows with
// a non-numeric identifier) are excluded and counted; they do not fail the
// file.
func ConvertFile(filing domain.RawFiling, logger *slog.Logger) (*FileConversion, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("file", filing.Name), slog.String("period", filing.Period.String()))

	delim, err := DetectFileDelimiter(filing.Path)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseFiling(filing.Path, delim, logger)
	if err != nil {
		return nil, err
	}

	projector, err := NewProjector(parsed.Header)
	if err != nil {
		return nil, err
	}
	classifier := NewClassifier(parsed.Header)

	conversion := &FileConversion{
		Filing:        filing,
		Delimiter:     delim,
		RecordsRead:   len(parsed.Rows),
		SeparatorRows: parsed.SeparatorRows,
		MalformedRows: parsed.MalformedRows,
	}

	sets := make(map[domain.FilerType]*domain.ProjectedSet, len(domain.FilerTypePriority))
	for _, row := range parsed.Rows {
		ft, ok := classifier.Classify(row)
		if !ok {
			conversion.Unclassifiable++
			continue
		}

		record, err := projector.Project(ft, row)
		if err != nil {
			conversion.IdentifierDrops++
			continue
		}

		set := sets[ft]
		if set == nil {
			set = &domain.ProjectedSet{
				FilerType: ft,
				Period:    filing.Period,
				Variables: projector.Variables(ft),
			}
			sets[ft] = set
		}
		set.Records = append(set.Records, record)
	}

	// Deterministic set order, independent of map iteration.
	for _, ft := range domain.FilerTypePriority {
		if set := sets[ft]; set != nil {
			conversion.Sets = append(conversion.Sets, set)
		}
	}

	logger.Debug("converted filing",
		slog.String("delimiter", delim.String()),
		slog.Int("records", conversion.RecordsRead),
		slog.Int("unclassifiable", conversion.Unclassifiable),
		slog.Int("identifier_drops", conversion.IdentifierDrops),
		slog.Int("filer_types", len(conversion.Sets)))

	return conversion, nil
}
