package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/handler/http/middleware"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/handler/http/response"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	RunComputation(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	computationService attendance.ComputationService
}

func NewAttendanceHandler(computationService attendance.ComputationService) AttendanceHandler {
	return &attendanceHandlerImpl{computationService: computationService}
}

// RunComputation implements AttendanceHandler. Manual trigger for a single
// shift; a repeat call for an already computed day gets a conflict.
func (h *attendanceHandlerImpl) RunComputation(w http.ResponseWriter, r *http.Request) {
	var req attendance.RunComputationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.OrganizationID = middleware.OrganizationID(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.computationService.RunComputation(r.Context(), req.OrganizationID, req.ShiftID, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Skipped {
		response.SuccessWithMessage(w, "Computation skipped", result)
		return
	}
	response.SuccessWithMessage(w, "Computation finished", result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.computationService.GetAttendance(r.Context(), chi.URLParam(r, "id"), middleware.OrganizationID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.Filter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		ShiftID:    r.URL.Query().Get("shift_id"),
		Status:     r.URL.Query().Get("status"),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 10),
	}
	if from, ok := validator.IsValidDate(r.URL.Query().Get("date_from")); ok {
		filter.DateFrom = &from
	}
	if to, ok := validator.IsValidDate(r.URL.Query().Get("date_to")); ok {
		filter.DateTo = &to
	}

	result, err := h.computationService.ListAttendance(r.Context(), filter, middleware.OrganizationID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}
