package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/shift"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/handler/http/middleware"
	"github.com/shiftwise-hr/shiftwise-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	PriorityAssign(w http.ResponseWriter, r *http.Request)
	Timeline(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService    shift.ShiftService
	timelineService shift.TimelineService
}

func NewShiftHandler(shiftService shift.ShiftService, timelineService shift.TimelineService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService:    shiftService,
		timelineService: timelineService,
	}
}

// Create implements ShiftHandler.
func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.OrganizationID = middleware.OrganizationID(r)

	result, err := h.shiftService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created", result)
}

// Get implements ShiftHandler.
func (h *shiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.GetShift(r.Context(), chi.URLParam(r, "id"), middleware.OrganizationID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := shift.ShiftFilter{
		Status: r.URL.Query().Get("status"),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 10),
	}

	result, err := h.shiftService.ListShifts(r.Context(), middleware.OrganizationID(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Shifts, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

// Update implements ShiftHandler.
func (h *shiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.OrganizationID = middleware.OrganizationID(r)

	result, err := h.shiftService.UpdateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated", result)
}

// Deactivate implements ShiftHandler.
func (h *shiftHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	var req shift.DeactivateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ShiftID = chi.URLParam(r, "id")
	req.OrganizationID = middleware.OrganizationID(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	err := h.timelineService.DeactivateShift(r.Context(), req.ShiftID, req.AlternativeShiftID, req.OrganizationID, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deactivated", nil)
}

// Assign implements ShiftHandler.
func (h *shiftHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req shift.AssignShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.OrganizationID = middleware.OrganizationID(r)
	req.IsESM = true

	logs, err := h.timelineService.AssignShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned", mapLogsToResponses(logs))
}

// PriorityAssign implements ShiftHandler.
func (h *shiftHandlerImpl) PriorityAssign(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	logs, err := h.timelineService.PriorityAssign(r.Context(), employeeID, middleware.OrganizationID(r), time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift resolved from priority sources", mapLogsToResponses(logs))
}

// Timeline implements ShiftHandler.
func (h *shiftHandlerImpl) Timeline(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.shiftService.GetTimeline(r.Context(), employeeID, middleware.OrganizationID(r),
		queryInt(r, "page", 1), queryInt(r, "limit", 10))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Logs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

func mapLogsToResponses(logs []shift.ShiftScheduleLog) []shift.ScheduleLogResponse {
	out := make([]shift.ScheduleLogResponse, 0, len(logs))
	for _, log := range logs {
		entry := shift.ScheduleLogResponse{
			ID:        log.ID,
			ShiftID:   log.ShiftID,
			StartDate: log.StartDate.Format("2006-01-02"),
			IsESM:     log.IsESM,
			Status:    string(log.Status),
		}
		if end, bounded := log.EndDate.Date(); bounded {
			formatted := end.Format("2006-01-02")
			entry.EndDate = &formatted
		}
		out = append(out, entry)
	}
	return out
}

func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
