package attendance

import (
	"github.com/shopspring/decimal"

	"github.com/factoryhr/timepay-backend-go/internal/domain/shift"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/validator"
)

// RecordDayRequest writes (or overwrites) the single attendance record
// for (employee_id, date). Punch times use the "H:MM AM|PM" convention;
// malformed punch text is treated as "no time recorded", not an error.
type RecordDayRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // "2006-01-02"
	Status     string  `json:"status"`
	ShiftType  string  `json:"shift_type"`
	CheckIn    *string `json:"check_in,omitempty"`
	LunchIn    *string `json:"lunch_in,omitempty"`
	LunchOut   *string `json:"lunch_out,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
}

func (r *RecordDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid YYYY-MM-DD date"})
	}
	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of Present, Absent, HalfDay, Leave, Holiday, WeekOff"})
	}
	if !shift.Type(r.ShiftType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "shift_type", Message: "must be one of day, night, sunday"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DayResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	ShiftType    string  `json:"shift_type"`
	CheckIn      *string `json:"check_in,omitempty"`
	LunchIn      *string `json:"lunch_in,omitempty"`
	LunchOut     *string `json:"lunch_out,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	WorkHrs      float64 `json:"work_hrs"`
	OtHrs        float64 `json:"ot_hrs"`
	PendingHrs   float64 `json:"pending_hrs"`
	WorkTime     string  `json:"work_time"`    // "H:MM"
	OvertimeTime string  `json:"ot_time"`      // "+H:MM"
	PendingTime  string  `json:"pending_time"` // "H:MM"
}

type MonthFilter struct {
	EmployeeID string
	Month      string // "2006-01"
}

func (f *MonthFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidMonth(f.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a valid YYYY-MM month"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlySummaryResponse struct {
	EmployeeID      string          `json:"employee_id"`
	Month           string          `json:"month"`
	PresentDays     int             `json:"present_days"`
	AbsentDays      int             `json:"absent_days"`
	HalfDays        int             `json:"half_days"`
	LeaveDays       int             `json:"leave_days"`
	HolidayDays     int             `json:"holiday_days"`
	WeekOffDays     int             `json:"week_off_days"`
	MarkedDays      int             `json:"marked_days"`
	FullWorkingDays int             `json:"full_working_days"`
	TotalWorkHrs    float64         `json:"total_work_hrs"`
	TotalOtHrs      float64         `json:"total_ot_hrs"`
	TotalPendingHrs float64         `json:"total_pending_hrs"`
	SundayAllowance decimal.Decimal `json:"sunday_allowance"`
	SundayOtHours   float64         `json:"sunday_ot_hours"`
	SundayOtAmount  decimal.Decimal `json:"sunday_ot_amount"`
}
