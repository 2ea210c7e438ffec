package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/mplosser/data-fry9/internal/errors"
	"github.com/mplosser/data-fry9/internal/dataprocessing"
	"github.com/mplosser/data-fry9/internal/files"
	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

// Extraction describes the outcome of normalizing one archive.
type Extraction struct {
	ArchiveName string
	ArchivePath string
	TargetName  string
	TargetPath  string
	Period      domain.Period
	// Skipped is true when the target file already existed and extraction
	// was not repeated.
	Skipped bool
}

// Normalizer extracts archived filings into the flat delimited text files
// the conversion pipeline consumes.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a new archive normalizer
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize locates every filing archive in dir and extracts each one to its
// canonical text-file name in the same directory. Extraction is idempotent:
// archives whose target file already exists are skipped. Per-archive failures
// are collected and returned alongside the successful extractions; they never
// abort the pass.
func (n *Normalizer) Normalize(dir string) ([]Extraction, []error) {
	discovery := files.NewDiscovery("")
	archives, err := discovery.FindArchiveFiles(dir)
	if err != nil {
		return nil, []error{apperrors.NewArchiveError(
			fmt.Sprintf("failed to scan %s for archives", dir), err)}
	}

	var extractions []Extraction
	var errs []error
	for _, arch := range archives {
		extraction, err := n.extract(arch, dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		extractions = append(extractions, extraction)
	}

	return extractions, errs
}

// extract unpacks one archive to its canonical target name.
func (n *Normalizer) extract(arch files.FileInfo, dir string) (Extraction, error) {
	period, err := dataprocessing.ResolvePeriod(arch.Name)
	if err != nil {
		return Extraction{}, err
	}

	targetName := CanonicalName(period)
	targetPath := filepath.Join(dir, targetName)

	extraction := Extraction{
		ArchiveName: arch.Name,
		ArchivePath: arch.Path,
		TargetName:  targetName,
		TargetPath:  targetPath,
		Period:      period,
	}

	if _, err := os.Stat(targetPath); err == nil {
		n.logger.Debug("extraction target exists, skipping",
			slog.String("archive", arch.Name),
			slog.String("target", targetName))
		extraction.Skipped = true
		return extraction, nil
	}

	reader, err := zip.OpenReader(arch.Path)
	if err != nil {
		return Extraction{}, apperrors.NewArchiveError(
			fmt.Sprintf("failed to open archive %s", arch.Name), err).
			WithContext("archive", arch.Path)
	}
	defer reader.Close()

	member := findFilingMember(&reader.Reader)
	if member == nil {
		return Extraction{}, apperrors.NewArchiveError(
			fmt.Sprintf("archive %s has no filing member", arch.Name), nil).
			WithContext("archive", arch.Path)
	}

	if err := n.copyMember(member, targetPath); err != nil {
		return Extraction{}, apperrors.NewArchiveError(
			fmt.Sprintf("failed to extract %s from %s", member.Name, arch.Name), err).
			WithContext("archive", arch.Path)
	}

	n.logger.Info("extracted archive",
		slog.String("archive", arch.Name),
		slog.String("member", member.Name),
		slog.String("target", targetName),
		slog.String("period", period.String()))

	return extraction, nil
}

// copyMember streams one archive member to targetPath. A partially written
// target is removed before the error is returned.
func (n *Normalizer) copyMember(member *zip.File, targetPath string) error {
	src, err := member.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(targetPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(targetPath)
		return err
	}
	if err := dst.Close(); err != nil {
		os.Remove(targetPath)
		return err
	}
	return nil
}

// findFilingMember returns the first member holding filing data, or nil.
func findFilingMember(r *zip.Reader) *zip.File {
	for _, member := range r.File {
		name := strings.ToUpper(filepath.Base(member.Name))
		if strings.HasPrefix(name, "BHCF") && strings.HasSuffix(name, ".TXT") {
			return member
		}
	}
	return nil
}

// CanonicalName returns the legacy-convention text filename an archive for
// the given period is extracted to, e.g. 2021Q2 -> "bhcf2102.csv".
func CanonicalName(period domain.Period) string {
	return fmt.Sprintf("bhcf%02d%02d.csv", period.Year%100, period.Quarter)
}
