package dataprocessing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/mplosser/data-fry9/internal/errors"
	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

var (
	// recentNamePattern matches the FFIEC-era convention: bhcf + yyyymmdd,
	// e.g. BHCF20210630.zip.
	recentNamePattern = regexp.MustCompile(`^bhcf(\d{4})(\d{2})(\d{2})(?:\.[a-z0-9]+)?$`)
	// legacyNamePattern matches the legacy convention: bhcf + 2-digit year +
	// quarter code, e.g. bhcf8603.csv.
	legacyNamePattern = regexp.MustCompile(`^bhcf(\d{2})(\d{2})(?:\.[a-z0-9]+)?$`)
)

// ResolvePeriod derives the reporting period from a filing filename alone.
// File contents are never inspected, so resolution works even for files that
// are otherwise malformed.
//
// Two conventions are recognized, the more specific one first:
//
//	bhcfYYYYMMDD.*  ->  calendar quarter containing the embedded date
//	bhcfYYQQ.*      ->  quarter QQ of year YY (pivot: YY < 50 is 2000s)
func ResolvePeriod(name string) (domain.Period, error) {
	lower := strings.ToLower(name)

	if m := recentNamePattern.FindStringSubmatch(lower); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return domain.Period{}, apperrors.NewNamingError(
				fmt.Sprintf("filename %s has an invalid embedded date", name)).
				WithContext("filename", name)
		}
		return domain.Period{Year: year, Quarter: (month + 2) / 3}, nil
	}

	if m := legacyNamePattern.FindStringSubmatch(lower); m != nil {
		year, _ := strconv.Atoi(m[1])
		quarter, _ := strconv.Atoi(m[2])
		if quarter < 1 || quarter > 4 {
			return domain.Period{}, apperrors.NewNamingError(
				fmt.Sprintf("filename %s has an invalid quarter code", name)).
				WithContext("filename", name)
		}
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
		return domain.Period{Year: year, Quarter: quarter}, nil
	}

	return domain.Period{}, apperrors.NewNamingError(
		fmt.Sprintf("filename %s matches no known convention", name)).
		WithContext("filename", name)
}
