package queries

import (
	"testing"
	"time"

	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDayRange_Resolve(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		from, to  *time.Time
		wantNil   bool
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:    "no bounds",
			wantNil: true,
		},
		{
			name:      "both bounds cover whole days",
			from:      day(2026, time.March, 1),
			to:        day(2026, time.March, 5),
			wantStart: *day(2026, time.March, 1),
			wantEnd:   *day(2026, time.March, 6),
		},
		{
			name:      "missing to ends today",
			from:      day(2026, time.March, 1),
			wantStart: *day(2026, time.March, 1),
			wantEnd:   *day(2026, time.March, 11),
		},
		{
			name:      "missing from starts in 2000",
			to:        day(2026, time.February, 28),
			wantStart: *day(2000, time.January, 1),
			wantEnd:   *day(2026, time.March, 1),
		},
		{
			name:      "time of day is dropped",
			from:      func() *time.Time { t := time.Date(2026, time.March, 2, 23, 59, 0, 0, time.UTC); return &t }(),
			to:        day(2026, time.March, 2),
			wantStart: *day(2026, time.March, 2),
			wantEnd:   *day(2026, time.March, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := newDayRange(tt.from, tt.to)
			require.NoError(t, err)

			period := r.resolve(now)
			if tt.wantNil {
				assert.Nil(t, period)
				return
			}

			require.NotNil(t, period)
			assert.True(t, tt.wantStart.Equal(period.Start), "start %s", period.Start)
			assert.True(t, tt.wantEnd.Equal(period.End), "end %s", period.End)
		})
	}
}

func TestDayRange_ClosedNeedsBothBounds(t *testing.T) {
	tests := []struct {
		name     string
		from, to *time.Time
		wantNil  bool
	}{
		{name: "no bounds", wantNil: true},
		{name: "only from", from: day(2026, time.March, 1), wantNil: true},
		{name: "only to", to: day(2026, time.March, 5), wantNil: true},
		{name: "both", from: day(2026, time.March, 1), to: day(2026, time.March, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := newDayRange(tt.from, tt.to)
			require.NoError(t, err)

			period := r.closed()
			if tt.wantNil {
				assert.Nil(t, period)
				return
			}
			require.NotNil(t, period)
			assert.Equal(t, *day(2026, time.March, 1), period.Start)
			assert.Equal(t, *day(2026, time.March, 6), period.End)
		})
	}
}

func TestDayRange_FromAfterTo(t *testing.T) {
	_, err := newDayRange(day(2026, time.March, 5), day(2026, time.March, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPeriod_Contains(t *testing.T) {
	p := Period{Start: *day(2026, time.March, 1), End: *day(2026, time.March, 2)}

	assert.True(t, p.Contains(*day(2026, time.March, 1)))
	assert.True(t, p.Contains(time.Date(2026, time.March, 1, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(*day(2026, time.March, 2)))
	assert.False(t, p.Contains(time.Date(2026, time.February, 28, 23, 0, 0, 0, time.UTC)))
}

func TestPeriod_Label(t *testing.T) {
	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  string
	}{
		{"single day", day(2026, time.March, 3), day(2026, time.March, 4), "Mar 3, 2026"},
		{"same year", day(2026, time.January, 5), day(2026, time.February, 1), "Jan 5 - Jan 31, 2026"},
		{"across years", day(2025, time.December, 30), day(2026, time.January, 3), "Dec 30, 2025 - Jan 2, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Period{Start: *tt.start, End: *tt.end}.Label())
		})
	}
}
