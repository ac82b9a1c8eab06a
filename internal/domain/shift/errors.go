package shift

import "errors"

var (
	// Shift template errors
	ErrShiftNotFound          = errors.New("shift not found")
	ErrShiftInactive          = errors.New("shift is inactive")
	ErrShiftLockedForEdit     = errors.New("shift is locked for editing until its failed computation run is cleared")
	ErrComputationMinutes     = errors.New("computation time minutes must be zero")
	ErrComputationHourClashes = errors.New("computation hour must differ from the shift start and end hours")
	ErrComputationHourInShift = errors.New("computation hour must not fall inside the shift window")

	// Timeline errors
	ErrScheduleLogNotFound = errors.New("shift schedule log not found")
	ErrInvalidDateRange    = errors.New("start date must not be after end date")
	ErrTimelineConflict    = errors.New("active schedule logs overlap; timeline invariant violated")
	ErrNoEffectiveWindow   = errors.New("no active shift schedule found for this time")
)
