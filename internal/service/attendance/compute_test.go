package attendance

import (
	"testing"
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/organization"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 11, hour, minute, 0, 0, time.UTC)
}

func scanAt(ts time.Time) scan.Scan {
	return scan.Scan{DateTime: ts, Status: scan.StatusPending}
}

func standardShift() shift.Shift {
	return shift.Shift{
		StartTime:           time.Date(0, 1, 1, 8, 0, 0, 0, time.UTC),
		EndTime:             time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
		ComputationTime:     time.Date(0, 1, 1, 20, 0, 0, 0, time.UTC),
		PresentWorkingHours: 8,
		PartialWorkingHours: 4,
	}
}

func noOTSettings() organization.ShiftSettings {
	s := organization.DefaultShiftSettings()
	s.OTApproval = false
	return s
}

func TestPairScans(t *testing.T) {
	t.Run("even count pairs in time order", func(t *testing.T) {
		scans := []scan.Scan{
			scanAt(at(17, 0)),
			scanAt(at(8, 0)),
			scanAt(at(12, 0)),
			scanAt(at(13, 0)),
		}

		pairs, leftover := PairScans(scans)
		require.Len(t, pairs, 2)
		assert.Nil(t, leftover)
		assert.Equal(t, at(8, 0), pairs[0][0].DateTime)
		assert.Equal(t, at(12, 0), pairs[0][1].DateTime)
		assert.Equal(t, at(13, 0), pairs[1][0].DateTime)
		assert.Equal(t, at(17, 0), pairs[1][1].DateTime)
	})

	t.Run("odd trailing scan is leftover", func(t *testing.T) {
		scans := []scan.Scan{
			scanAt(at(8, 0)),
			scanAt(at(12, 0)),
			scanAt(at(13, 0)),
		}

		pairs, leftover := PairScans(scans)
		require.Len(t, pairs, 1)
		require.NotNil(t, leftover)
		assert.Equal(t, at(13, 0), leftover.DateTime)
	})

	t.Run("single scan has no pair", func(t *testing.T) {
		pairs, leftover := PairScans([]scan.Scan{scanAt(at(8, 0))})
		assert.Empty(t, pairs)
		require.NotNil(t, leftover)
	})
}

func TestDeriveFullDay(t *testing.T) {
	sh := standardShift()
	scans := []scan.Scan{scanAt(at(8, 0)), scanAt(at(16, 0))}

	d := Derive(sh, scans, at(8, 0), at(17, 0), noOTSettings(), false, false)

	assert.Equal(t, 480, d.DurationMinutes)
	assert.Equal(t, 0, d.LateCheckIn)
	assert.Equal(t, attendance.StatusPresent, d.Status)
	assert.InDelta(t, 60, d.EarlyCheckOut, 0.01)
}

func TestDeriveOvertimeWithApproval(t *testing.T) {
	sh := standardShift()
	settings := noOTSettings()
	settings.OTApproval = true

	// 10 hours of scans against 8 present hours.
	scans := []scan.Scan{scanAt(at(8, 0)), scanAt(at(18, 0))}

	d := Derive(sh, scans, at(8, 0), at(17, 0), settings, false, false)

	assert.Equal(t, 120, d.OvertimeMinutes)
	assert.Equal(t, 480, d.DurationMinutes)
	require.NotNil(t, d.OTStatus)
	assert.Equal(t, attendance.OTStatusAvailable, *d.OTStatus)
	assert.Equal(t, attendance.StatusPresent, d.Status)
	assert.InDelta(t, 60, d.LateCheckOut, 0.01)
}

func TestDeriveOvertimeAutomatedApproval(t *testing.T) {
	sh := standardShift()
	settings := noOTSettings()
	settings.OTApproval = true
	settings.AutomatedOTApproval = true

	scans := []scan.Scan{scanAt(at(8, 0)), scanAt(at(18, 0))}

	d := Derive(sh, scans, at(8, 0), at(17, 0), settings, false, false)

	require.NotNil(t, d.OTStatus)
	assert.Equal(t, attendance.OTStatusRequested, *d.OTStatus)
}

func TestDeriveOvertimeWithoutApproval(t *testing.T) {
	sh := standardShift()
	scans := []scan.Scan{scanAt(at(8, 0)), scanAt(at(18, 0))}

	d := Derive(sh, scans, at(8, 0), at(17, 0), noOTSettings(), false, false)

	// Overtime is recorded but the worked duration is not reduced.
	assert.Equal(t, 120, d.OvertimeMinutes)
	assert.Equal(t, 600, d.DurationMinutes)
	assert.Nil(t, d.OTStatus)
}

func TestDeriveOvertimeBelowMinimum(t *testing.T) {
	sh := standardShift()
	settings := noOTSettings()
	settings.OTApproval = true
	settings.MinimumOTMinutes = 30

	// 20 minutes over the present threshold.
	scans := []scan.Scan{scanAt(at(8, 0)), scanAt(at(16, 20))}

	d := Derive(sh, scans, at(8, 0), at(17, 0), settings, false, false)

	assert.Equal(t, 20, d.OvertimeMinutes)
	assert.Equal(t, 500, d.DurationMinutes)
	assert.Nil(t, d.OTStatus)
}

func TestDeriveLateCheckIn(t *testing.T) {
	sh := standardShift()
	scans := []scan.Scan{scanAt(at(8, 45)), scanAt(at(13, 0))}

	d := Derive(sh, scans, at(8, 0), at(17, 0), noOTSettings(), false, false)

	assert.Equal(t, 45, d.LateCheckIn)
	assert.Equal(t, 255, d.DurationMinutes)
	assert.Equal(t, attendance.StatusPartial, d.Status)
}

func TestDeriveDurationCap(t *testing.T) {
	sh := standardShift()
	start := at(8, 0)
	scans := []scan.Scan{scanAt(start), scanAt(start.Add(26 * time.Hour))}

	d := Derive(sh, scans, at(8, 0), at(17, 0), noOTSettings(), false, false)

	assert.Equal(t, 1440, d.DurationMinutes)
}

func TestDeriveNoScans(t *testing.T) {
	sh := standardShift()

	t.Run("absent on a working day", func(t *testing.T) {
		d := Derive(sh, nil, at(8, 0), at(17, 0), noOTSettings(), false, false)
		assert.Equal(t, attendance.StatusAbsent, d.Status)
		assert.Equal(t, 0, d.DurationMinutes)
	})

	t.Run("weekend on a skip day", func(t *testing.T) {
		d := Derive(sh, nil, at(8, 0), at(17, 0), noOTSettings(), true, false)
		assert.Equal(t, attendance.StatusWeekend, d.Status)
	})

	t.Run("holiday", func(t *testing.T) {
		d := Derive(sh, nil, at(8, 0), at(17, 0), noOTSettings(), false, true)
		assert.Equal(t, attendance.StatusHoliday, d.Status)
	})

	t.Run("skip day wins over holiday", func(t *testing.T) {
		d := Derive(sh, nil, at(8, 0), at(17, 0), noOTSettings(), true, true)
		assert.Equal(t, attendance.StatusWeekend, d.Status)
	})
}

func TestDeriveSingleScanNoDuration(t *testing.T) {
	sh := standardShift()

	d := Derive(sh, []scan.Scan{scanAt(at(8, 0))}, at(8, 0), at(17, 0), noOTSettings(), false, false)

	assert.Equal(t, 0, d.DurationMinutes)
	assert.Equal(t, attendance.StatusAbsent, d.Status)
}

func TestDeriveWeekendOverridesWorkedDay(t *testing.T) {
	sh := standardShift()
	scans := []scan.Scan{scanAt(at(8, 0)), scanAt(at(16, 0))}

	d := Derive(sh, scans, at(8, 0), at(17, 0), noOTSettings(), true, false)

	assert.Equal(t, 480, d.DurationMinutes)
	assert.Equal(t, attendance.StatusWeekend, d.Status)
}
