package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrRunAlreadyDone     = errors.New("attendance computation already completed for this shift today")
	ErrRunNotFound        = errors.New("computation history record not found")
)
