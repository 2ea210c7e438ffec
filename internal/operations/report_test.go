package operations

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mplosser/data-fry9/internal/errors"
	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

func TestNewRunReport(t *testing.T) {
	report := NewRunReport()

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.StartedAt.IsZero())
	assert.NotNil(t, report.SkippedFiles)
	assert.False(t, report.Succeeded())
}

func TestRunReport_SkipReasons(t *testing.T) {
	report := NewRunReport()

	report.Skip(apperrors.NewArchiveError("bad zip", nil))
	report.Skip(apperrors.NewFormatError("bad header", nil))
	report.Skip(apperrors.NewFormatError("another bad header", nil))
	report.Skip(apperrors.NewNamingError("odd name"))
	report.Skip(errors.New("untyped"))

	assert.Equal(t, 1, report.SkippedFiles["ARCHIVE"])
	assert.Equal(t, 2, report.SkippedFiles["FORMAT"])
	assert.Equal(t, 1, report.SkippedFiles["NAMING"])
	assert.Equal(t, 1, report.SkippedFiles["OTHER"])
	assert.Equal(t, 5, report.FilesSkipped())
}

func TestRunReport_Aggregation(t *testing.T) {
	report := NewRunReport()
	report.Files = []FileResult{
		{
			Filing:      domain.RawFiling{Name: "bhcf8603.csv", Period: domain.Period{Year: 1986, Quarter: 3}},
			RecordsRead: 10,
			Partitions: []domain.PartitionResult{
				{FilerType: domain.FilerY9C, Records: 8},
				{FilerType: domain.FilerY9LP, Records: 2},
			},
			Unclassifiable: 2,
		},
		{
			Filing:          domain.RawFiling{Name: "bhcf9902.csv", Period: domain.Period{Year: 1999, Quarter: 2}},
			RecordsRead:     5,
			IdentifierDrops: 1,
			Err:             apperrors.NewFormatError("broken", nil),
		},
	}

	assert.Equal(t, 1, report.FilesProcessed())
	assert.Equal(t, 1, report.FilesFailed())
	assert.Equal(t, 2, report.PartitionsWritten())
	assert.Len(t, report.Partitions(), 2)
	assert.Equal(t, 15, report.RecordsRead())
	assert.Equal(t, 3, report.RecordsExcluded())
	assert.True(t, report.Succeeded())
}

func TestRunReport_PeriodRange(t *testing.T) {
	report := NewRunReport()

	_, _, ok := report.PeriodRange()
	assert.False(t, ok)

	report.Files = []FileResult{
		{Filing: domain.RawFiling{Period: domain.Period{Year: 1999, Quarter: 2}}},
		{Filing: domain.RawFiling{Period: domain.Period{Year: 1986, Quarter: 3}}},
		{Filing: domain.RawFiling{Period: domain.Period{Year: 1999, Quarter: 4}}},
	}

	first, last, ok := report.PeriodRange()
	require.True(t, ok)
	assert.Equal(t, domain.Period{Year: 1986, Quarter: 3}, first)
	assert.Equal(t, domain.Period{Year: 1999, Quarter: 4}, last)
}
