package attendance

import (
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/validator"
)

type RunComputationRequest struct {
	ShiftID        string `json:"shift_id"`
	OrganizationID string `json:"-"`
}

func (r *RunComputationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	ShiftID         string  `json:"shift_id"`
	Date            string  `json:"date"`
	DurationMinutes int     `json:"duration_minutes"`
	LateCheckIn     int     `json:"late_check_in"`
	LateCheckOut    float64 `json:"late_check_out"`
	EarlyCheckOut   float64 `json:"early_check_out"`
	OvertimeMinutes int     `json:"overtime_minutes"`
	OTStatus        *string `json:"ot_status"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ListResponse struct {
	TotalCount  int64      `json:"total_count"`
	Page        int        `json:"page"`
	Limit       int        `json:"limit"`
	TotalPages  int        `json:"total_pages"`
	Attendances []Response `json:"attendances"`
}
