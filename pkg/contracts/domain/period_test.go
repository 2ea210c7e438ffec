package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriod_String(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		want   string
	}{
		{
			name:   "third quarter 1986",
			period: Period{Year: 1986, Quarter: 3},
			want:   "1986Q3",
		},
		{
			name:   "second quarter 2021",
			period: Period{Year: 2021, Quarter: 2},
			want:   "2021Q2",
		},
		{
			name:   "fourth quarter",
			period: Period{Year: 2008, Quarter: 4},
			want:   "2008Q4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.String())
		})
	}
}

func TestPeriod_End(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		want   time.Time
	}{
		{
			name:   "Q1 ends March 31",
			period: Period{Year: 2021, Quarter: 1},
			want:   time.Date(2021, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "Q2 ends June 30",
			period: Period{Year: 2021, Quarter: 2},
			want:   time.Date(2021, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "Q3 ends September 30",
			period: Period{Year: 1986, Quarter: 3},
			want:   time.Date(1986, time.September, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "Q4 ends December 31",
			period: Period{Year: 1999, Quarter: 4},
			want:   time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.End())
		})
	}
}

func TestPeriod_EpochDays(t *testing.T) {
	tests := []struct {
		name   string
		period Period
	}{
		{name: "recent period", period: Period{Year: 2021, Quarter: 2}},
		{name: "legacy period", period: Period{Year: 1986, Quarter: 3}},
		{name: "pre-epoch period", period: Period{Year: 1969, Quarter: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := tt.period.EpochDays()
			back := time.Unix(int64(days)*86400, 0).UTC()
			assert.Equal(t, tt.period.End(), back)
		})
	}
}

func TestPeriod_Valid(t *testing.T) {
	assert.True(t, Period{Year: 2021, Quarter: 1}.Valid())
	assert.True(t, Period{Year: 1986, Quarter: 4}.Valid())
	assert.False(t, Period{Year: 2021, Quarter: 0}.Valid())
	assert.False(t, Period{Year: 2021, Quarter: 5}.Valid())
	assert.False(t, Period{}.Valid())
	assert.True(t, Period{}.IsZero())
}

func TestPeriod_Before(t *testing.T) {
	tests := []struct {
		name string
		a, b Period
		want bool
	}{
		{
			name: "earlier year",
			a:    Period{Year: 1986, Quarter: 4},
			b:    Period{Year: 1987, Quarter: 1},
			want: true,
		},
		{
			name: "same year earlier quarter",
			a:    Period{Year: 2021, Quarter: 1},
			b:    Period{Year: 2021, Quarter: 2},
			want: true,
		},
		{
			name: "equal periods",
			a:    Period{Year: 2021, Quarter: 2},
			b:    Period{Year: 2021, Quarter: 2},
			want: false,
		},
		{
			name: "later year",
			a:    Period{Year: 2022, Quarter: 1},
			b:    Period{Year: 2021, Quarter: 4},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Before(tt.b))
		})
	}
}
