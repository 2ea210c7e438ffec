package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mplosser/data-fry9/internal/errors"
	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

func TestNewProjector_MissingIdentifier(t *testing.T) {
	_, err := NewProjector([]string{"BHCK1234", "BHCP5678"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeFormat))
}

func TestNewProjector_CanonicalIdentifierAccepted(t *testing.T) {
	p, err := NewProjector([]string{"RSSD_ID", "BHCK1234"})
	require.NoError(t, err)

	record, err := p.Project(domain.FilerY9C, []string{"42", "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), record.RSSDID)
}

func TestVariables_SortedPerType(t *testing.T) {
	header := []string{"RSSD9001", "BHCK9999", "BHCK0001", "BHCP5678", "TEXT1234"}
	p, err := NewProjector(header)
	require.NoError(t, err)

	assert.Equal(t, []string{"BHCK0001", "BHCK9999"}, p.Variables(domain.FilerY9C))
	assert.Equal(t, []string{"BHCP5678"}, p.Variables(domain.FilerY9LP))
	assert.Empty(t, p.Variables(domain.FilerY9SP))
}

func TestProject_DropsForeignGroupColumns(t *testing.T) {
	header := []string{"RSSD9001", "BHCK1234", "BHCP5678"}
	p, err := NewProjector(header)
	require.NoError(t, err)

	// The stray BHCK value on a record classified as Y-9LP must not leak.
	record, err := p.Project(domain.FilerY9LP, []string{"12345", "stray", "200"})
	require.NoError(t, err)

	assert.Equal(t, int64(12345), record.RSSDID)
	require.Len(t, record.Values, 1)
	require.NotNil(t, record.Values[0])
	assert.Equal(t, "200", *record.Values[0])
}

func TestProject_MissingValuesAreNil(t *testing.T) {
	header := []string{"RSSD9001", "BHCK1234", "BHCK5678"}
	p, err := NewProjector(header)
	require.NoError(t, err)

	record, err := p.Project(domain.FilerY9C, []string{"12345", "", "100"})
	require.NoError(t, err)

	require.Len(t, record.Values, 2)
	assert.Nil(t, record.Values[0])
	require.NotNil(t, record.Values[1])
	assert.Equal(t, "100", *record.Values[1])
}

func TestProject_IdentifierCoercion(t *testing.T) {
	header := []string{"RSSD9001", "BHCK1234"}
	p, err := NewProjector(header)
	require.NoError(t, err)

	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "plain integer", raw: "12345", want: 12345},
		{name: "surrounding whitespace", raw: " 12345 ", want: 12345},
		{name: "float rendering truncates", raw: "12345.0", want: 12345},
		{name: "fractional truncates", raw: "12345.9", want: 12345},
		{name: "large identifier keeps precision", raw: "9007199254740993", want: 9007199254740993},
		{name: "empty", raw: "", wantErr: true},
		{name: "non numeric", raw: "ABC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := p.Project(domain.FilerY9C, []string{tt.raw, "x"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, record.RSSDID)
		})
	}
}
