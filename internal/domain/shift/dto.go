package shift

import (
	"time"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	OrganizationID      string  `json:"-"`
	Name                string  `json:"name"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
	ComputationTime     string  `json:"computation_time"`
	PresentWorkingHours float64 `json:"present_working_hours"`
	PartialWorkingHours float64 `json:"partial_working_hours"`
	SkipDays            []int   `json:"skip_days"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if _, ok := validator.IsValidTimeOfDay(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be HH:MM or HH:MM:SS"})
	}
	if _, ok := validator.IsValidTimeOfDay(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be HH:MM or HH:MM:SS"})
	}
	if _, ok := validator.IsValidTimeOfDay(r.ComputationTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "computation_time", Message: "computation_time must be HH:MM or HH:MM:SS"})
	}
	if r.PresentWorkingHours <= 0 || r.PresentWorkingHours > 24 {
		errs = append(errs, validator.ValidationError{Field: "present_working_hours", Message: "present_working_hours must be between 0 and 24"})
	}
	if r.PartialWorkingHours < 0 || r.PartialWorkingHours > r.PresentWorkingHours {
		errs = append(errs, validator.ValidationError{Field: "partial_working_hours", Message: "partial_working_hours must be between 0 and present_working_hours"})
	}
	for _, d := range r.SkipDays {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{Field: "skip_days", Message: "skip_days entries must be weekdays 0-6"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID                  string   `json:"-"`
	OrganizationID      string   `json:"-"`
	Name                *string  `json:"name"`
	StartTime           *string  `json:"start_time"`
	EndTime             *string  `json:"end_time"`
	ComputationTime     *string  `json:"computation_time"`
	PresentWorkingHours *float64 `json:"present_working_hours"`
	PartialWorkingHours *float64 `json:"partial_working_hours"`
	SkipDays            *[]int   `json:"skip_days"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	for field, v := range map[string]*string{
		"start_time":       r.StartTime,
		"end_time":         r.EndTime,
		"computation_time": r.ComputationTime,
	} {
		if v == nil {
			continue
		}
		if _, ok := validator.IsValidTimeOfDay(*v); !ok {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " must be HH:MM or HH:MM:SS"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignShiftRequest struct {
	EmployeeID     string  `json:"employee_id"`
	OrganizationID string  `json:"-"`
	ShiftID        string  `json:"shift_id"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date"`
	IsESM          bool    `json:"-"`

	// Now anchors "today" for past-date clamping; zero means time.Now.
	Now time.Time `json:"-"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "shift_id is required"})
	}
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	if r.EndDate != nil {
		end, endOK := validator.IsValidDate(*r.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
		} else if ok && end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeactivateShiftRequest struct {
	ShiftID            string `json:"shift_id"`
	AlternativeShiftID string `json:"alternative_shift_id"`
	OrganizationID     string `json:"-"`
}

func (r *DeactivateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "shift_id is required"})
	}
	if validator.IsEmpty(r.AlternativeShiftID) {
		errs = append(errs, validator.ValidationError{Field: "alternative_shift_id", Message: "alternative_shift_id is required"})
	}
	if r.ShiftID == r.AlternativeShiftID {
		errs = append(errs, validator.ValidationError{Field: "alternative_shift_id", Message: "alternative shift must differ from the shift being deactivated"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
	ComputationTime     string  `json:"computation_time"`
	PresentWorkingHours float64 `json:"present_working_hours"`
	PartialWorkingHours float64 `json:"partial_working_hours"`
	SkipDays            []int   `json:"skip_days"`
	Status              string  `json:"status"`
	IsNight             bool    `json:"is_night"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type ListShiftResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Shifts     []ShiftResponse `json:"shifts"`
}

type ScheduleLogResponse struct {
	ID        string  `json:"id"`
	ShiftID   string  `json:"shift_id"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsESM     bool    `json:"is_esm"`
	Status    string  `json:"status"`
}

type TimelineResponse struct {
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	Logs       []ScheduleLogResponse `json:"logs"`
}
