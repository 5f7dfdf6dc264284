package response

import (
	"errors"
	"net/http"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/domain/employee"
	"github.com/factoryhr/timepay-backend-go/internal/domain/payroll"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/validator"
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
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrDayNotFound):
		NotFound(w, "Attendance day not found")
	case errors.Is(err, attendance.ErrSummaryNotFound):
		NotFound(w, "Monthly summary not found")
	case errors.Is(err, attendance.ErrUnknownShift):
		BadRequest(w, "Unknown shift type", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRowNotFound):
		NotFound(w, "Payroll row not found")
	case errors.Is(err, payroll.ErrAlreadyCredited):
		Conflict(w, "Payroll row already credited")
	case errors.Is(err, payroll.ErrAttendanceNotAccepted):
		Conflict(w, "Attendance for the month is not accepted")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
