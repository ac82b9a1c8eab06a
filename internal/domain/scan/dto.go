package scan

import (
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/validator"
)

type RecordScanRequest struct {
	EmployeeID     string  `json:"employee_id"`
	OrganizationID string  `json:"-"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Image          []byte  `json:"-"`
}

func (r *RecordScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScanResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	DateTime   string `json:"date_time"`
	ScanType   string `json:"scan_type"`
	Status     string `json:"status"`
	ShiftID    string `json:"shift_id"`
}
