package shift

import "time"

type ShiftStatus string

const (
	ShiftStatusActive   ShiftStatus = "active"
	ShiftStatusInactive ShiftStatus = "inactive"
)

// Shift is the template an employee is scheduled against: start/end time of
// day, the hour at which its attendance window is finalized, and the working
// hour thresholds used to derive attendance status.
type Shift struct {
	ID                  string
	OrganizationID      string
	Name                string
	StartTime           time.Time // time of day only
	EndTime             time.Time // time of day only, may wrap past midnight
	ComputationTime     time.Time // hour of day, minutes must be zero
	PresentWorkingHours float64
	PartialWorkingHours float64
	SkipDays            []time.Weekday
	Status              ShiftStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsNight reports whether the shift's window is finalized on the day after it
// starts: the computation hour precedes the start hour, so the occurrence that
// began on day D is still open past midnight and closes at D+1's computation
// instant. This single predicate drives window resolution, assignment
// effective dates, and the batch engine's attendance date.
func (s Shift) IsNight() bool {
	return s.StartTime.Hour() > s.ComputationTime.Hour()
}

// CrossesMidnight reports whether the end-of-shift instant falls on the day
// after the start-of-shift instant.
func (s Shift) CrossesMidnight() bool {
	start := s.StartTime.Hour()*3600 + s.StartTime.Minute()*60 + s.StartTime.Second()
	end := s.EndTime.Hour()*3600 + s.EndTime.Minute()*60 + s.EndTime.Second()
	return end <= start
}

// Window returns the concrete start and end instants of the shift occurrence
// beginning on date (interpreted in date's location).
func (s Shift) Window(date time.Time) (start, end time.Time) {
	start = atTimeOfDay(date, s.StartTime)
	end = atTimeOfDay(date, s.EndTime)
	if s.CrossesMidnight() {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// ComputationInstant returns the instant at which the occurrence beginning on
// date is finalized. Night shifts (and day shifts whose computation hour
// precedes their start hour) finalize on the following day.
func (s Shift) ComputationInstant(date time.Time) time.Time {
	instant := atTimeOfDay(date, s.ComputationTime)
	if s.IsNight() {
		instant = instant.AddDate(0, 0, 1)
	}
	return instant
}

// ValidateTemplate checks the invariants a shift template must satisfy:
// the computation time is a whole hour, differs from the start and end hours,
// and never lands strictly inside the shift window itself.
func (s Shift) ValidateTemplate() error {
	if s.ComputationTime.Minute() != 0 || s.ComputationTime.Second() != 0 {
		return ErrComputationMinutes
	}
	comp := s.ComputationTime.Hour()
	if comp == s.StartTime.Hour() || comp == s.EndTime.Hour() {
		return ErrComputationHourClashes
	}
	start, end := s.StartTime.Hour(), s.EndTime.Hour()
	if s.CrossesMidnight() {
		if comp > start || comp < end {
			return ErrComputationHourInShift
		}
	} else if comp > start && comp < end {
		return ErrComputationHourInShift
	}
	return nil
}

// IsSkipDay reports whether the weekday of date is a weekly off for the shift.
func (s Shift) IsSkipDay(date time.Time) bool {
	for _, d := range s.SkipDays {
		if date.Weekday() == d {
			return true
		}
	}
	return false
}

func atTimeOfDay(date, tod time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, date.Location())
}

type LogStatus string

const (
	LogStatusActive   LogStatus = "active"
	LogStatusInactive LogStatus = "inactive"
)

// ShiftScheduleLog is one interval of an employee's shift timeline: shift S
// applies from StartDate through EndDate inclusive. An unbounded EndDate marks
// the open tail of the timeline. Inactive logs are superseded history and are
// excluded from all resolution.
type ShiftScheduleLog struct {
	ID             string
	EmployeeID     string
	OrganizationID string
	ShiftID        string
	StartDate      time.Time
	EndDate        DateBound
	Status         LogStatus
	IsESM          bool // explicit (admin) mapping vs priority auto-assignment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Covers reports whether date falls inside the log's range.
func (l ShiftScheduleLog) Covers(date time.Time) bool {
	d := Day(date)
	if d.Before(Day(l.StartDate)) {
		return false
	}
	end, bounded := l.EndDate.Date()
	if !bounded {
		return true
	}
	return !d.After(Day(end))
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
