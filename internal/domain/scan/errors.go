package scan

import "errors"

var (
	ErrScanCooldown       = errors.New("a scan was already recorded in the last 5 minutes")
	ErrNoShiftWindow      = errors.New("no active shift schedule found for this time")
	ErrShiftTimeExceeded  = errors.New("exceeded the shift start time")
	ErrEmployeeInactive   = errors.New("employee is not active")
	ErrLocationNotFound   = errors.New("location settings not found")
	ErrOutsideGeoFence    = errors.New("you are outside the allowed location radius")
	ErrFaceNoMatch        = errors.New("face did not match any registered member")
	ErrFaceAmbiguousMatch = errors.New("face matched more than one registered member")
	ErrFaceMismatch       = errors.New("face does not belong to this employee")
)
