package shiftwindow

import (
	"testing"
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func nightShift() shift.Shift {
	// 22:00-06:00, finalized at 07:00 the next day.
	return shift.Shift{
		ID:              "night",
		StartTime:       tod(22, 0),
		EndTime:         tod(6, 0),
		ComputationTime: tod(7, 0),
	}
}

func dayShift() shift.Shift {
	// 09:00-17:00, finalized at 20:00 the same day.
	return shift.Shift{
		ID:              "day",
		StartTime:       tod(9, 0),
		EndTime:         tod(17, 0),
		ComputationTime: tod(20, 0),
	}
}

func dayLog(sh shift.Shift) *DayLog {
	return &DayLog{
		Log:   shift.ShiftScheduleLog{ID: "log-" + sh.ID, ShiftID: sh.ID, Status: shift.LogStatusActive},
		Shift: sh,
	}
}

func at(y int, m time.Month, d, hour, minute int) time.Time {
	return time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
}

func TestResolveNightShiftStillOpenFromYesterday(t *testing.T) {
	snap := Snapshot{
		Yesterday: dayLog(nightShift()),
		Today:     dayLog(nightShift()),
	}

	// 02:00, mid-occurrence of the shift that started yesterday 22:00.
	win, ok := Resolve(snap, at(2025, 3, 11, 2, 0))
	require.True(t, ok)

	assert.Equal(t, at(2025, 3, 10, 0, 0), win.Date)
	assert.Equal(t, at(2025, 3, 10, 22, 0), win.Start)
	assert.Equal(t, at(2025, 3, 11, 6, 0), win.End)
}

func TestResolveNightShiftRollsToTodayAfterComputation(t *testing.T) {
	snap := Snapshot{
		Yesterday: dayLog(nightShift()),
		Today:     dayLog(nightShift()),
	}

	// 08:00, past yesterday's 07:00 computation instant.
	win, ok := Resolve(snap, at(2025, 3, 11, 8, 0))
	require.True(t, ok)

	assert.Equal(t, at(2025, 3, 11, 0, 0), win.Date)
	assert.Equal(t, at(2025, 3, 11, 22, 0), win.Start)
	assert.Equal(t, at(2025, 3, 12, 6, 0), win.End)
}

func TestResolveNightShiftBoundaryInstant(t *testing.T) {
	snap := Snapshot{
		Yesterday: dayLog(nightShift()),
		Today:     dayLog(nightShift()),
	}

	// Exactly at the computation instant the occurrence is not yet finalized.
	win, ok := Resolve(snap, at(2025, 3, 11, 7, 0))
	require.True(t, ok)
	assert.Equal(t, at(2025, 3, 10, 0, 0), win.Date)
}

func TestResolveDayShiftBeforeComputation(t *testing.T) {
	snap := Snapshot{Today: dayLog(dayShift())}

	win, ok := Resolve(snap, at(2025, 3, 11, 10, 0))
	require.True(t, ok)
	assert.Equal(t, at(2025, 3, 11, 0, 0), win.Date)
	assert.Equal(t, at(2025, 3, 11, 9, 0), win.Start)
	assert.Equal(t, at(2025, 3, 11, 17, 0), win.End)
}

func TestResolveDayShiftRollsToTomorrowAfterComputation(t *testing.T) {
	snap := Snapshot{
		Today:    dayLog(dayShift()),
		Tomorrow: dayLog(dayShift()),
	}

	win, ok := Resolve(snap, at(2025, 3, 11, 21, 0))
	require.True(t, ok)
	assert.Equal(t, at(2025, 3, 12, 0, 0), win.Date)
}

func TestResolveNoLogs(t *testing.T) {
	_, ok := Resolve(Snapshot{}, at(2025, 3, 11, 10, 0))
	assert.False(t, ok)
}

func TestLastComputationInstant(t *testing.T) {
	snap := Snapshot{
		Yesterday: dayLog(nightShift()),
		Today:     dayLog(dayShift()),
	}

	// Yesterday's night occurrence finalized today 07:00; today's day shift
	// finalizes 20:00 and has not passed yet.
	instant, found := LastComputationInstant(snap, at(2025, 3, 11, 12, 0))
	require.True(t, found)
	assert.Equal(t, at(2025, 3, 11, 7, 0), instant)

	// After 20:00 today's boundary is the most recent.
	instant, found = LastComputationInstant(snap, at(2025, 3, 11, 21, 0))
	require.True(t, found)
	assert.Equal(t, at(2025, 3, 11, 20, 0), instant)
}

func TestNextScanType(t *testing.T) {
	snap := Snapshot{Today: dayLog(dayShift())}
	now := at(2025, 3, 11, 10, 0)

	t.Run("no pending scan starts a session", func(t *testing.T) {
		assert.Equal(t, scan.TypeCheckIn, NextScanType(nil, snap, now))
	})

	t.Run("after a check-out the next scan checks in", func(t *testing.T) {
		last := &scan.Scan{ScanType: scan.TypeCheckOut, DateTime: at(2025, 3, 11, 9, 0)}
		assert.Equal(t, scan.TypeCheckIn, NextScanType(last, snap, now))
	})

	t.Run("open check-in pairs with a check-out", func(t *testing.T) {
		last := &scan.Scan{ScanType: scan.TypeCheckIn, DateTime: at(2025, 3, 11, 9, 0)}
		assert.Equal(t, scan.TypeCheckOut, NextScanType(last, snap, now))
	})

	t.Run("check-in from a finalized window is stale", func(t *testing.T) {
		// Pending check-in from yesterday morning, before yesterday's night
		// occurrence was finalized at 07:00 today.
		withYesterday := Snapshot{
			Yesterday: dayLog(nightShift()),
			Today:     dayLog(dayShift()),
		}
		last := &scan.Scan{ScanType: scan.TypeCheckIn, DateTime: at(2025, 3, 11, 6, 30)}
		assert.Equal(t, scan.TypeCheckIn, NextScanType(last, withYesterday, at(2025, 3, 11, 10, 0)))
	})
}
