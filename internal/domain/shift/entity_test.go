package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func testShift(start, end, comp time.Time) Shift {
	return Shift{StartTime: start, EndTime: end, ComputationTime: comp}
}

func TestIsNight(t *testing.T) {
	tests := []struct {
		name  string
		shift Shift
		want  bool
	}{
		{"day shift computed same evening", testShift(tod(9, 0), tod(17, 0), tod(20, 0)), false},
		{"night shift computed next morning", testShift(tod(22, 0), tod(6, 0), tod(7, 0)), true},
		{"evening shift computed after midnight", testShift(tod(14, 0), tod(23, 0), tod(2, 0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shift.IsNight())
		})
	}
}

func TestCrossesMidnight(t *testing.T) {
	assert.False(t, testShift(tod(9, 0), tod(17, 0), tod(20, 0)).CrossesMidnight())
	assert.True(t, testShift(tod(22, 0), tod(6, 0), tod(7, 0)).CrossesMidnight())
	assert.True(t, testShift(tod(22, 0), tod(22, 0), tod(7, 0)).CrossesMidnight())
}

func TestWindow(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("day shift stays within the date", func(t *testing.T) {
		start, end := testShift(tod(9, 0), tod(17, 0), tod(20, 0)).Window(date)
		assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC), end)
	})

	t.Run("night shift ends the next day", func(t *testing.T) {
		start, end := testShift(tod(22, 0), tod(6, 0), tod(7, 0)).Window(date)
		assert.Equal(t, time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC), end)
	})
}

func TestComputationInstant(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	day := testShift(tod(9, 0), tod(17, 0), tod(20, 0))
	assert.Equal(t, time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC), day.ComputationInstant(date))

	night := testShift(tod(22, 0), tod(6, 0), tod(7, 0))
	assert.Equal(t, time.Date(2025, 3, 11, 7, 0, 0, 0, time.UTC), night.ComputationInstant(date))
}

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name    string
		shift   Shift
		wantErr error
	}{
		{"valid day shift", testShift(tod(9, 0), tod(17, 0), tod(20, 0)), nil},
		{"valid night shift", testShift(tod(22, 0), tod(6, 0), tod(7, 0)), nil},
		{"computation time with minutes", testShift(tod(9, 0), tod(17, 0), tod(20, 30)), ErrComputationMinutes},
		{"computation hour equals start", testShift(tod(9, 0), tod(17, 0), tod(9, 0)), ErrComputationHourClashes},
		{"computation hour equals end", testShift(tod(9, 0), tod(17, 0), tod(17, 0)), ErrComputationHourClashes},
		{"computation hour inside day window", testShift(tod(9, 0), tod(17, 0), tod(12, 0)), ErrComputationHourInShift},
		{"computation hour inside wrapped window before midnight", testShift(tod(22, 0), tod(6, 0), tod(23, 0)), ErrComputationHourInShift},
		{"computation hour inside wrapped window after midnight", testShift(tod(22, 0), tod(6, 0), tod(3, 0)), ErrComputationHourInShift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shift.ValidateTemplate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIsSkipDay(t *testing.T) {
	sh := Shift{SkipDays: []time.Weekday{time.Saturday, time.Sunday}}

	saturday := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, sh.IsSkipDay(saturday))
	assert.False(t, sh.IsSkipDay(monday))
}

func TestDateBound(t *testing.T) {
	d1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("zero value is unbounded", func(t *testing.T) {
		var b DateBound
		assert.True(t, b.IsUnbounded())
		assert.True(t, b.OnOrAfter(d2))
		assert.False(t, b.Before(d2))
	})

	t.Run("bounded comparisons", func(t *testing.T) {
		b := Bounded(d1)
		assert.True(t, b.Before(d2))
		assert.False(t, b.OnOrAfter(d2))
		assert.True(t, b.OnOrAfter(d1))
	})

	t.Run("bound truncates to midnight", func(t *testing.T) {
		b := Bounded(time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC))
		got, bounded := b.Date()
		require.True(t, bounded)
		assert.Equal(t, d1, got)
	})

	t.Run("equality", func(t *testing.T) {
		assert.True(t, Bounded(d1).Equal(Bounded(d1)))
		assert.False(t, Bounded(d1).Equal(Bounded(d2)))
		assert.True(t, Unbounded().Equal(Unbounded()))
		assert.False(t, Bounded(d1).Equal(Unbounded()))
	})
}

func TestScheduleLogCovers(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("bounded range", func(t *testing.T) {
		log := ShiftScheduleLog{StartDate: start, EndDate: Bounded(start.AddDate(0, 0, 5))}
		assert.True(t, log.Covers(start))
		assert.True(t, log.Covers(start.AddDate(0, 0, 5)))
		assert.False(t, log.Covers(start.AddDate(0, 0, 6)))
		assert.False(t, log.Covers(start.AddDate(0, 0, -1)))
	})

	t.Run("open tail", func(t *testing.T) {
		log := ShiftScheduleLog{StartDate: start, EndDate: Unbounded()}
		assert.True(t, log.Covers(start.AddDate(1, 0, 0)))
		assert.False(t, log.Covers(start.AddDate(0, 0, -1)))
	})
}
