package response

import (
	"errors"
	"net/http"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/employee"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/organization"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftInactive):
		BadRequest(w, "Shift is inactive", nil)
	case errors.Is(err, shift.ErrShiftLockedForEdit):
		Conflict(w, "Shift cannot be edited while a computation run is in flight or failed")
	case errors.Is(err, shift.ErrComputationMinutes),
		errors.Is(err, shift.ErrComputationHourClashes),
		errors.Is(err, shift.ErrComputationHourInShift):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, shift.ErrScheduleLogNotFound):
		NotFound(w, "Schedule log not found")
	case errors.Is(err, shift.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)
	case errors.Is(err, shift.ErrTimelineConflict):
		Conflict(w, "Assignment conflicts with the existing shift timeline")
	case errors.Is(err, shift.ErrNoEffectiveWindow):
		NotFound(w, "No effective shift window for the employee")

	// Scan domain errors
	case errors.Is(err, scan.ErrScanCooldown):
		TooManyRequests(w, "Please wait before scanning again")
	case errors.Is(err, scan.ErrNoShiftWindow):
		BadRequest(w, "No shift window applies right now", nil)
	case errors.Is(err, scan.ErrShiftTimeExceeded):
		BadRequest(w, "Check-in window for the shift has passed", nil)
	case errors.Is(err, scan.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")
	case errors.Is(err, scan.ErrLocationNotFound):
		NotFound(w, "Location settings not found")
	case errors.Is(err, scan.ErrOutsideGeoFence):
		Forbidden(w, "Scan location is outside every allowed area")
	case errors.Is(err, scan.ErrFaceNoMatch),
		errors.Is(err, scan.ErrFaceAmbiguousMatch),
		errors.Is(err, scan.ErrFaceMismatch):
		Forbidden(w, "Face verification failed")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRunAlreadyDone):
		Conflict(w, "Computation already completed for this shift today")
	case errors.Is(err, attendance.ErrRunNotFound):
		NotFound(w, "Computation history record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Organization domain errors
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, organization.ErrNoPrioritySource):
		BadRequest(w, "No priority source carries an active shift", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
