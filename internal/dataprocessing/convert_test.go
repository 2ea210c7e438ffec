package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mplosser/data-fry9/internal/errors"
	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

func filingFixture(t *testing.T, name, content string) domain.RawFiling {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	period, err := ResolvePeriod(name)
	require.NoError(t, err)

	return domain.RawFiling{
		Path:   path,
		Name:   name,
		Period: period,
		Size:   int64(len(content)),
	}
}

func TestConvertFile_ClassifiesAndProjects(t *testing.T) {
	filing := filingFixture(t, "bhcf8603.csv",
		"RSSD9001,BHCK1234,BHCP5678\n12345,100,\n")

	conversion, err := ConvertFile(filing, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.DelimiterComma, conversion.Delimiter)
	assert.Equal(t, 1, conversion.RecordsRead)
	assert.Zero(t, conversion.Unclassifiable)

	require.Len(t, conversion.Sets, 1)
	set := conversion.Sets[0]
	assert.Equal(t, domain.FilerY9C, set.FilerType)
	assert.Equal(t, domain.Period{Year: 1986, Quarter: 3}, set.Period)
	assert.Equal(t, []string{"BHCK1234"}, set.Variables)

	require.Len(t, set.Records, 1)
	assert.Equal(t, int64(12345), set.Records[0].RSSDID)
	require.NotNil(t, set.Records[0].Values[0])
	assert.Equal(t, "100", *set.Records[0].Values[0])
}

func TestConvertFile_SplitsByFilerType(t *testing.T) {
	filing := filingFixture(t, "bhcf9902.csv",
		"RSSD9001,BHCK1234,BHCP5678,BHSP9999\n"+
			"1,100,,\n"+
			"2,,200,\n"+
			"3,,,300\n")

	conversion, err := ConvertFile(filing, nil)
	require.NoError(t, err)

	require.Len(t, conversion.Sets, 3)
	// Sets come back in priority order regardless of input order.
	assert.Equal(t, domain.FilerY9C, conversion.Sets[0].FilerType)
	assert.Equal(t, domain.FilerY9LP, conversion.Sets[1].FilerType)
	assert.Equal(t, domain.FilerY9SP, conversion.Sets[2].FilerType)
	for _, set := range conversion.Sets {
		assert.Len(t, set.Records, 1)
	}
}

func TestConvertFile_CaretDelimited(t *testing.T) {
	filing := filingFixture(t, "bhcf2102.csv",
		"RSSD9001^BHCK1234\n12345^100\n")

	conversion, err := ConvertFile(filing, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.DelimiterCaret, conversion.Delimiter)
	require.Len(t, conversion.Sets, 1)
	assert.Equal(t, domain.Period{Year: 2021, Quarter: 2}, conversion.Sets[0].Period)
}

func TestConvertFile_UnclassifiableExcludedNotFatal(t *testing.T) {
	filing := filingFixture(t, "bhcf8603.csv",
		"RSSD9001,BHCK1234,BHCP5678,BHSP9999\n"+
			"1,100,,\n"+
			"2,,,\n")

	conversion, err := ConvertFile(filing, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, conversion.RecordsRead)
	assert.Equal(t, 1, conversion.Unclassifiable)
	require.Len(t, conversion.Sets, 1)
	assert.Len(t, conversion.Sets[0].Records, 1)
}

func TestConvertFile_IdentifierDropCounted(t *testing.T) {
	filing := filingFixture(t, "bhcf8603.csv",
		"RSSD9001,BHCK1234\nnot-a-number,100\n12345,200\n")

	conversion, err := ConvertFile(filing, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, conversion.IdentifierDrops)
	require.Len(t, conversion.Sets, 1)
	require.Len(t, conversion.Sets[0].Records, 1)
	assert.Equal(t, int64(12345), conversion.Sets[0].Records[0].RSSDID)
}

func TestConvertFile_AllRecordsDegenerate(t *testing.T) {
	filing := filingFixture(t, "bhcf8603.csv",
		"RSSD9001,BHCK1234\n12345,\n")

	conversion, err := ConvertFile(filing, nil)
	require.NoError(t, err)

	// The file converts without error but yields no partitions; the caller
	// decides what an empty conversion means for the run.
	assert.Empty(t, conversion.Sets)
	assert.Equal(t, 1, conversion.Unclassifiable)
}

func TestConvertFile_NoIdentifierColumn(t *testing.T) {
	filing := filingFixture(t, "bhcf8603.csv",
		"BHCK1234,BHCP5678\n100,200\n")

	_, err := ConvertFile(filing, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeFormat))
}

func TestConvertFile_SeparatorRowsCounted(t *testing.T) {
	filing := filingFixture(t, "bhcf8603.csv",
		"RSSD9001,BHCK1234\n--------,--------\n12345,100\n")

	conversion, err := ConvertFile(filing, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, conversion.SeparatorRows)
	assert.Equal(t, 1, conversion.RecordsRead)
}
