package shift

import "time"

// DateBound is the inclusive upper bound of a schedule log's date range.
// The zero value is unbounded, which makes "open tail" a type-level fact
// instead of a nullable column compared against nil.
type DateBound struct {
	date    time.Time
	bounded bool
}

func Bounded(date time.Time) DateBound {
	return DateBound{date: Day(date), bounded: true}
}

func Unbounded() DateBound {
	return DateBound{}
}

// Date returns the bound and whether it exists.
func (b DateBound) Date() (time.Time, bool) {
	return b.date, b.bounded
}

func (b DateBound) IsUnbounded() bool {
	return !b.bounded
}

// Before reports whether the bound exists and falls strictly before d.
// An unbounded end never precedes any date.
func (b DateBound) Before(d time.Time) bool {
	return b.bounded && b.date.Before(Day(d))
}

// OnOrAfter reports whether the range ending at b still reaches d:
// true for unbounded ends and for bounds at or after d.
func (b DateBound) OnOrAfter(d time.Time) bool {
	return !b.bounded || !b.date.Before(Day(d))
}

// Equal compares two bounds.
func (b DateBound) Equal(other DateBound) bool {
	if b.bounded != other.bounded {
		return false
	}
	return !b.bounded || b.date.Equal(other.date)
}
