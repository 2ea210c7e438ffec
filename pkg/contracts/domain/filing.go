package domain

// Canonical column names shared by every partition schema.
const (
	// RawIdentifierColumn is the institution identifier as it appears in
	// source headers.
	RawIdentifierColumn = "RSSD9001"
	// IdentifierColumn is the canonical name the raw identifier is renamed to.
	IdentifierColumn = "RSSD_ID"
	// PeriodColumn holds the reporting period (quarter-end date) derived from
	// the source filename.
	PeriodColumn = "REPORTING_PERIOD"
)

// FilerType identifies which FR Y-9 report family a record belongs to.
type FilerType string

const (
	FilerY9C  FilerType = "FR_Y9C"
	FilerY9LP FilerType = "FR_Y9LP"
	FilerY9SP FilerType = "FR_Y9SP"
)

// FilerTypePriority lists all filer types in classification priority order:
// when two groups tie on a non-zero count, the earlier entry wins.
var FilerTypePriority = [3]FilerType{FilerY9C, FilerY9LP, FilerY9SP}

// Prefix returns the column-name prefix whose variables belong to t.
func (t FilerType) Prefix() string {
	switch t {
	case FilerY9C:
		return "BHCK"
	case FilerY9LP:
		return "BHCP"
	case FilerY9SP:
		return "BHSP"
	}
	return ""
}

// Dir returns the partition subdirectory for t.
func (t FilerType) Dir() string {
	switch t {
	case FilerY9C:
		return "y_9c"
	case FilerY9LP:
		return "y_9lp"
	case FilerY9SP:
		return "y_9sp"
	}
	return ""
}

// Valid reports whether t is one of the three known filer types.
func (t FilerType) Valid() bool {
	return t == FilerY9C || t == FilerY9LP || t == FilerY9SP
}

// Delimiter is a detected field separator.
type Delimiter rune

const (
	// DelimiterComma is used by the legacy (Chicago Fed era) CSV files.
	DelimiterComma Delimiter = ','
	// DelimiterCaret is used by the recent (FFIEC era) text files.
	DelimiterCaret Delimiter = '^'
)

// String returns the delimiter as a one-character string.
func (d Delimiter) String() string { return string(rune(d)) }

// RawFiling is one delimited text file holding one reporting period.
type RawFiling struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Period Period `json:"period"`
	Size   int64  `json:"size"`
}

// PartitionResult describes one partition file written for a
// (filer type, period) pair.
type PartitionResult struct {
	FilerType FilerType `json:"filer_type"`
	Period    Period    `json:"period"`
	Path      string    `json:"path"`
	Records   int       `json:"records"`
	Variables int       `json:"variables"`
	Bytes     int64     `json:"bytes"`
	Digest    uint64    `json:"digest"`
}
