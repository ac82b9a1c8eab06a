package timeline

import (
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
)

// Segment is one schedule log to be created by a split.
type Segment struct {
	ShiftID string
	Start   time.Time
	End     shift.DateBound
	IsESM   bool
}

// SplitPlan is the outcome of overlaying a new assignment onto an employee's
// active timeline: the replacement segments to insert and the superseded log
// IDs to deactivate. Applying the plan inside one transaction keeps the
// non-overlap and coverage invariants.
type SplitPlan struct {
	Create     []Segment
	Deactivate []string
}

func (p SplitPlan) IsNoOp() bool {
	return len(p.Create) == 0 && len(p.Deactivate) == 0
}

// BuildSplitPlan computes the before/during/after decomposition for assigning
// shiftID over [start, end] given the employee's active logs overlapping that
// range. Start dates in the past are clamped to today so computed history is
// never rewritten; a clamped range that becomes empty aborts with
// ErrInvalidDateRange. Adjacent segments that would carry the new shift are
// absorbed into the during segment instead of being materialized separately.
func BuildSplitPlan(logs []shift.ShiftScheduleLog, shiftID string, start time.Time, end shift.DateBound, isESM bool, today time.Time) (SplitPlan, error) {
	start = shift.Day(start)
	today = shift.Day(today)
	if start.Before(today) {
		start = today
	}
	if e, bounded := end.Date(); bounded && e.Before(start) {
		return SplitPlan{}, shift.ErrInvalidDateRange
	}

	affected := overlapping(logs, start, end)
	if err := checkDisjoint(affected); err != nil {
		return SplitPlan{}, err
	}

	if len(affected) == 0 {
		return SplitPlan{
			Create: []Segment{{ShiftID: shiftID, Start: start, End: end, IsESM: isESM}},
		}, nil
	}

	head := affected[0]
	tail := affected[len(affected)-1]

	durStart := start
	durEnd := end
	var before, after *Segment

	if shift.Day(head.StartDate).Before(start) {
		if head.ShiftID == shiftID {
			durStart = shift.Day(head.StartDate)
		} else {
			before = &Segment{
				ShiftID: head.ShiftID,
				Start:   shift.Day(head.StartDate),
				End:     shift.Bounded(start.AddDate(0, 0, -1)),
				IsESM:   head.IsESM,
			}
		}
	}

	if e, bounded := end.Date(); bounded {
		tailEnd, tailBounded := tail.EndDate.Date()
		if !tailBounded || shift.Day(tailEnd).After(e) {
			afterEnd := shift.Unbounded()
			if tailBounded {
				afterEnd = shift.Bounded(tailEnd)
			}
			if tail.ShiftID == shiftID {
				durEnd = afterEnd
			} else {
				after = &Segment{
					ShiftID: tail.ShiftID,
					Start:   e.AddDate(0, 0, 1),
					End:     afterEnd,
					IsESM:   tail.IsESM,
				}
			}
		}
	}

	// Re-assigning the same shift over a range one log already covers changes
	// nothing; leave the timeline untouched.
	if len(affected) == 1 && head.ShiftID == shiftID && before == nil && after == nil &&
		shift.Day(head.StartDate).Equal(durStart) && head.EndDate.Equal(durEnd) {
		return SplitPlan{}, nil
	}

	plan := SplitPlan{}
	if before != nil {
		plan.Create = append(plan.Create, *before)
	}
	plan.Create = append(plan.Create, Segment{ShiftID: shiftID, Start: durStart, End: durEnd, IsESM: isESM})
	if after != nil {
		plan.Create = append(plan.Create, *after)
	}
	for _, l := range affected {
		plan.Deactivate = append(plan.Deactivate, l.ID)
	}
	return plan, nil
}

// overlapping filters the active logs intersecting [start, end] and returns
// them ordered by start date.
func overlapping(logs []shift.ShiftScheduleLog, start time.Time, end shift.DateBound) []shift.ShiftScheduleLog {
	var out []shift.ShiftScheduleLog
	for _, l := range logs {
		if l.Status != shift.LogStatusActive {
			continue
		}
		if !l.EndDate.OnOrAfter(start) {
			continue
		}
		if e, bounded := end.Date(); bounded && shift.Day(l.StartDate).After(e) {
			continue
		}
		out = append(out, l)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].StartDate.Before(out[j-1].StartDate); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// checkDisjoint surfaces a timeline invariant violation instead of silently
// producing an impossible split.
func checkDisjoint(logs []shift.ShiftScheduleLog) error {
	for i := 1; i < len(logs); i++ {
		prev := logs[i-1]
		if prev.EndDate.IsUnbounded() {
			return shift.ErrTimelineConflict
		}
		if prev.EndDate.OnOrAfter(logs[i].StartDate) {
			return shift.ErrTimelineConflict
		}
	}
	return nil
}
