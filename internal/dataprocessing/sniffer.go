package dataprocessing

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/mplosser/data-fry9/internal/errors"
	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

// DetectDelimiter inspects the header line of a delimited filing and returns
// which of the two known field delimiters it uses. A caret anywhere in the
// header selects the caret format; otherwise the legacy comma format is
// assumed. The header must be non-empty and must split into at least two
// columns under the chosen delimiter.
func DetectDelimiter(r io.Reader) (domain.Delimiter, error) {
	header, err := readHeaderLine(r)
	if err != nil {
		return 0, apperrors.NewFormatError("failed to read header line", err)
	}
	if strings.TrimSpace(header) == "" {
		return 0, apperrors.NewFormatError("header line is empty", nil)
	}

	delim := domain.DelimiterComma
	if strings.ContainsRune(header, rune(domain.DelimiterCaret)) {
		delim = domain.DelimiterCaret
	}

	if len(strings.Split(header, delim.String())) < 2 {
		return 0, apperrors.NewFormatError(
			fmt.Sprintf("header yields a single column with delimiter %q", delim.String()), nil)
	}

	return delim, nil
}

// DetectFileDelimiter opens path and sniffs its delimiter.
func DetectFileDelimiter(path string) (domain.Delimiter, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, apperrors.NewFormatError(
			fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	delim, err := DetectDelimiter(f)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			return 0, appErr.WithContext("path", path)
		}
		return 0, err
	}
	return delim, nil
}

// readHeaderLine reads up to the first newline without consuming the rest of
// the stream's buffering guarantees.
func readHeaderLine(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
