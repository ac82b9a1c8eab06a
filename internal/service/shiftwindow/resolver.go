package shiftwindow

import (
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
)

// DayLog pairs a schedule log with its resolved shift template.
type DayLog struct {
	Log   shift.ShiftScheduleLog
	Shift shift.Shift
}

// Snapshot holds the three candidate logs around "now". It is an immutable
// view of the interval store; resolution is a pure function of it.
type Snapshot struct {
	Yesterday *DayLog
	Today     *DayLog
	Tomorrow  *DayLog
}

// Window is the single effective shift occurrence at a point in time.
type Window struct {
	Log   shift.ShiftScheduleLog
	Shift shift.Shift
	Date  time.Time // attendance date of the occurrence
	Start time.Time
	End   time.Time
}

// Resolve picks the effective window at now. A night shift that started
// yesterday stays in effect through its computation instant; otherwise
// today's log holds until its own computation has passed, after which the
// employee has rolled into tomorrow's log.
func Resolve(snap Snapshot, now time.Time) (Window, bool) {
	today := shift.Day(now)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	if y := snap.Yesterday; y != nil && y.Shift.IsNight() {
		if !now.After(y.Shift.ComputationInstant(yesterday)) {
			return window(y, yesterday), true
		}
	}

	if t := snap.Today; t != nil {
		notYetComputed := t.Shift.StartTime.Hour() >= t.Shift.ComputationTime.Hour() ||
			!now.After(t.Shift.ComputationInstant(today))
		if notYetComputed {
			return window(t, today), true
		}
	}

	if tm := snap.Tomorrow; tm != nil {
		return window(tm, tomorrow), true
	}

	return Window{}, false
}

func window(dl *DayLog, date time.Time) Window {
	start, end := dl.Shift.Window(date)
	return Window{Log: dl.Log, Shift: dl.Shift, Date: date, Start: start, End: end}
}

// LastComputationInstant walks today then yesterday to find the most recent
// computation boundary that has already passed. Scans at or before that
// instant belong to an already-finalized window.
func LastComputationInstant(snap Snapshot, now time.Time) (time.Time, bool) {
	today := shift.Day(now)
	yesterday := today.AddDate(0, 0, -1)

	var best time.Time
	found := false
	consider := func(dl *DayLog, date time.Time) {
		if dl == nil {
			return
		}
		instant := dl.Shift.ComputationInstant(date)
		if !instant.After(now) && (!found || instant.After(best)) {
			best = instant
			found = true
		}
	}
	consider(snap.Today, today)
	consider(snap.Yesterday, yesterday)
	return best, found
}

// NextScanType decides whether a new scan is a check-in or the check-out
// matching the employee's last pending scan. A pending check-in at or before
// the last passed computation instant is stale and the new scan starts a
// fresh session.
func NextScanType(lastPending *scan.Scan, snap Snapshot, now time.Time) scan.Type {
	if lastPending == nil || lastPending.ScanType == scan.TypeCheckOut {
		return scan.TypeCheckIn
	}
	if instant, ok := LastComputationInstant(snap, now); ok {
		if !lastPending.DateTime.After(instant) {
			return scan.TypeCheckIn
		}
	}
	return scan.TypeCheckOut
}
