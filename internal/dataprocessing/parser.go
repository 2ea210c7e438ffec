package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	apperrors "github.com/mplosser/data-fry9/internal/errors"
	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

// ParsedFiling is the tokenized content of one delimited filing file.
type ParsedFiling struct {
	// Header holds the normalized (uppercased, trimmed) column names with
	// duplicates removed; first occurrence wins.
	Header []string
	// Rows are the data rows aligned to Header.
	Rows [][]string
	// SeparatorRows counts decorative rows whose first field is all dashes.
	SeparatorRows int
	// MalformedRows counts rows whose field count differs from the header.
	MalformedRows int
}

// ParseFiling reads a delimited filing file into memory. Separator rows and
// rows whose width disagrees with the header are dropped and counted, never
// fatal. Fields that are not valid UTF-8 are re-decoded as Latin-1 so every
// value downstream is a valid UTF-8 string.
func ParseFiling(path string, delim domain.Delimiter, logger *slog.Logger) (*ParsedFiling, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewFormatError(
			fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = rune(delim)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rawHeader, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewFormatError(
			fmt.Sprintf("failed to read header of %s", path), err)
	}

	header, keep := normalizeHeader(rawHeader, logger)

	parsed := &ParsedFiling{Header: header}
	for {
		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Bad lines are skipped, not fatal.
			parsed.MalformedRows++
			continue
		}

		if len(raw) > 0 && isSeparatorField(raw[0]) {
			parsed.SeparatorRows++
			continue
		}
		if len(raw) != len(rawHeader) {
			parsed.MalformedRows++
			continue
		}

		row := make([]string, len(keep))
		for i, src := range keep {
			row[i] = ensureUTF8(raw[src])
		}
		parsed.Rows = append(parsed.Rows, row)
	}

	return parsed, nil
}

// normalizeHeader uppercases and trims the raw column names and drops
// duplicates, keeping the first occurrence. It returns the normalized names
// and the source index of each kept column.
func normalizeHeader(rawHeader []string, logger *slog.Logger) ([]string, []int) {
	seen := make(map[string]bool, len(rawHeader))
	header := make([]string, 0, len(rawHeader))
	keep := make([]int, 0, len(rawHeader))

	for i, name := range rawHeader {
		normalized := strings.ToUpper(strings.TrimSpace(ensureUTF8(name)))
		if seen[normalized] {
			logger.Warn("duplicate column ignored",
				slog.String("column", normalized),
				slog.Int("position", i))
			continue
		}
		seen[normalized] = true
		header = append(header, normalized)
		keep = append(keep, i)
	}

	return header, keep
}

// isSeparatorField reports whether a field is a decorative all-dash marker
// like "--------".
func isSeparatorField(field string) bool {
	if field == "" {
		return false
	}
	for _, r := range field {
		if r != '-' {
			return false
		}
	}
	return true
}

// ensureUTF8 returns s unchanged when it is valid UTF-8, otherwise decodes
// it as Latin-1.
func ensureUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}
