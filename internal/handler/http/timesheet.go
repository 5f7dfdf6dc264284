package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	RecordDay(w http.ResponseWriter, r *http.Request)
	ListDays(w http.ResponseWriter, r *http.Request)
	MonthlySummary(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService attendance.TimesheetService
}

func NewTimesheetHandler(timesheetService attendance.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

func (h *timesheetHandlerImpl) RecordDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.RecordDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance day recorded", result)
}

func (h *timesheetHandlerImpl) ListDays(w http.ResponseWriter, r *http.Request) {
	filter := attendance.MonthFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Month:      r.URL.Query().Get("month"),
	}

	result, err := h.timesheetService.ListDays(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	filter := attendance.MonthFilter{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Month:      chi.URLParam(r, "month"),
	}

	result, err := h.timesheetService.MonthlySummary(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
