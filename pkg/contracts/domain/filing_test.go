package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilerType_Prefix(t *testing.T) {
	tests := []struct {
		name      string
		filerType FilerType
		want      string
	}{
		{name: "Y-9C uses BHCK", filerType: FilerY9C, want: "BHCK"},
		{name: "Y-9LP uses BHCP", filerType: FilerY9LP, want: "BHCP"},
		{name: "Y-9SP uses BHSP", filerType: FilerY9SP, want: "BHSP"},
		{name: "unknown type has no prefix", filerType: FilerType("OTHER"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filerType.Prefix())
		})
	}
}

func TestFilerType_Dir(t *testing.T) {
	tests := []struct {
		name      string
		filerType FilerType
		want      string
	}{
		{name: "Y-9C directory", filerType: FilerY9C, want: "y_9c"},
		{name: "Y-9LP directory", filerType: FilerY9LP, want: "y_9lp"},
		{name: "Y-9SP directory", filerType: FilerY9SP, want: "y_9sp"},
		{name: "unknown type has no directory", filerType: FilerType("OTHER"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filerType.Dir())
		})
	}
}

func TestFilerType_Valid(t *testing.T) {
	assert.True(t, FilerY9C.Valid())
	assert.True(t, FilerY9LP.Valid())
	assert.True(t, FilerY9SP.Valid())
	assert.False(t, FilerType("").Valid())
	assert.False(t, FilerType("UNKNOWN").Valid())
}

func TestFilerTypePriority_Order(t *testing.T) {
	// The priority order doubles as the tie-break rule, so it must stay
	// exactly Y-9C, Y-9LP, Y-9SP.
	assert.Equal(t, [3]FilerType{FilerY9C, FilerY9LP, FilerY9SP}, FilerTypePriority)
}

func TestFilerTypePriority_PrefixesDisjoint(t *testing.T) {
	seen := map[string]FilerType{}
	for _, ft := range FilerTypePriority {
		prefix := ft.Prefix()
		assert.NotEmpty(t, prefix)
		_, dup := seen[prefix]
		assert.False(t, dup, "prefix %q assigned to two filer types", prefix)
		seen[prefix] = ft
	}
}

func TestDelimiter_String(t *testing.T) {
	assert.Equal(t, ",", DelimiterComma.String())
	assert.Equal(t, "^", DelimiterCaret.String())
}
