package attendance

import (
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/organization"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
)

// maxDayMinutes caps every duration figure at one day.
const maxDayMinutes = 1440

// PairScans orders scans by time and groups them into (check-in, check-out)
// pairs. An odd trailing scan has no partner and is returned separately so
// the caller can expire it instead of consuming it.
func PairScans(scans []scan.Scan) (pairs [][2]scan.Scan, leftover *scan.Scan) {
	sorted := make([]scan.Scan, len(scans))
	copy(sorted, scans)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].DateTime.Before(sorted[j-1].DateTime); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	for i := 0; i+1 < len(sorted); i += 2 {
		pairs = append(pairs, [2]scan.Scan{sorted[i], sorted[i+1]})
	}
	if len(sorted)%2 == 1 {
		last := sorted[len(sorted)-1]
		leftover = &last
	}
	return pairs, leftover
}

// Derivation is everything the engine writes onto an attendance row.
type Derivation struct {
	DurationMinutes int
	LateCheckIn     int
	LateCheckOut    float64
	EarlyCheckOut   float64
	OvertimeMinutes int
	OTStatus        *attendance.OTStatus
	Status          attendance.Status
}

// Derive computes the attendance figures for one employee and one shift
// occurrence. scans must already be limited to the computation window;
// shiftStart/shiftEnd are the concrete instants of the occurrence.
func Derive(sh shift.Shift, scans []scan.Scan, shiftStart, shiftEnd time.Time, settings organization.ShiftSettings, isSkipDay, isHoliday bool) Derivation {
	if len(scans) == 0 {
		return Derivation{Status: zeroScanStatus(isSkipDay, isHoliday)}
	}

	pairs, _ := PairScans(scans)
	if len(pairs) == 0 {
		// A single unmatched scan carries no duration.
		return Derivation{Status: overrideStatus(attendance.StatusAbsent, isSkipDay, isHoliday)}
	}

	total := 0
	for _, p := range pairs {
		total += int(p[1].DateTime.Sub(p[0].DateTime).Minutes())
	}
	total = capMinutes(total)

	d := Derivation{DurationMinutes: total}

	first := pairs[0][0].DateTime
	if late := int(first.Sub(shiftStart).Minutes()); late > 0 {
		d.LateCheckIn = capMinutes(late)
	}

	presentMinutes := int(sh.PresentWorkingHours * 60)
	if total > presentMinutes {
		overtime := capMinutes(total - presentMinutes)
		d.OvertimeMinutes = overtime
		if settings.OTApproval && overtime >= settings.MinimumOTMinutes {
			d.DurationMinutes = total - overtime
			status := attendance.OTStatusAvailable
			if settings.AutomatedOTApproval {
				status = attendance.OTStatusRequested
			}
			d.OTStatus = &status
		}
	}

	last := pairs[len(pairs)-1][1].DateTime
	delta := last.Sub(shiftEnd).Minutes()
	if delta > 0 {
		d.LateCheckOut = capFloatMinutes(delta)
	} else if delta < 0 {
		d.EarlyCheckOut = capFloatMinutes(-delta)
	}

	hours := float64(d.DurationMinutes) / 60
	switch {
	case hours >= sh.PresentWorkingHours:
		d.Status = attendance.StatusPresent
	case hours >= sh.PartialWorkingHours:
		d.Status = attendance.StatusPartial
	default:
		d.Status = attendance.StatusAbsent
	}
	d.Status = overrideStatus(d.Status, isSkipDay, isHoliday)
	return d
}

// zeroScanStatus marks the day when no scans arrived: weekly off wins, then
// holiday, then absent.
func zeroScanStatus(isSkipDay, isHoliday bool) attendance.Status {
	return overrideStatus(attendance.StatusAbsent, isSkipDay, isHoliday)
}

// overrideStatus applies the weekend/holiday override on top of a computed
// status; a scheduled off-day always wins over computed presence.
func overrideStatus(computed attendance.Status, isSkipDay, isHoliday bool) attendance.Status {
	if isSkipDay {
		return attendance.StatusWeekend
	}
	if isHoliday {
		return attendance.StatusHoliday
	}
	return computed
}

func capMinutes(v int) int {
	if v > maxDayMinutes {
		return maxDayMinutes
	}
	return v
}

func capFloatMinutes(v float64) float64 {
	if v > maxDayMinutes {
		return maxDayMinutes
	}
	return v
}
