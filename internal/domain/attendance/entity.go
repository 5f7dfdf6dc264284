package attendance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/factoryhr/timepay-backend-go/internal/domain/shift"
)

// Status is the per-day attendance marking.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "HalfDay"
	StatusLeave   Status = "Leave"
	StatusHoliday Status = "Holiday"
	StatusWeekOff Status = "WeekOff"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave, StatusHoliday, StatusWeekOff:
		return true
	}
	return false
}

// Working reports whether the day goes through punch arithmetic.
// Leave, Holiday, WeekOff and Absent short-circuit per policy.
func (s Status) Working() bool {
	return s == StatusPresent || s == StatusHalfDay
}

// Day is one attendance record. Exactly one exists per (employee, date);
// the repository enforces this with a keyed upsert, so writers never
// append duplicates. Punch fields hold the stored 12-hour text
// convention ("9:05 AM") and are nil when no time was recorded.
type Day struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	ShiftType  shift.Type
	CheckIn    *string
	LunchIn    *string
	LunchOut   *string
	CheckOut   *string
	WorkHrs    float64
	OtHrs      float64
	PendingHrs float64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined for listings
	EmployeeName *string
}

// IsSunday reports whether the record falls on a Sunday.
func (d Day) IsSunday() bool {
	return d.Date.Weekday() == time.Sunday
}

// MonthlySummary is fully derived from one employee+month of Day rows.
// It is recomputed on demand, never incrementally maintained; the value
// returned by the aggregator and the one persisted are identical.
type MonthlySummary struct {
	EmployeeID      string
	Month           string // "YYYY-MM"
	PresentDays     int
	AbsentDays      int
	HalfDays        int
	LeaveDays       int
	HolidayDays     int
	WeekOffDays     int
	MarkedDays      int
	FullWorkingDays int
	TotalWorkHrs    float64
	TotalOtHrs      float64
	TotalPendingHrs float64
	SundayAllowance decimal.Decimal
	SundayOtHours   float64
	SundayOtAmount  decimal.Decimal
	ComputedAt      time.Time
}

// ApprovalStatus is the per-(employee,month) attendance approval state
// gating payroll crediting.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalAccepted ApprovalStatus = "accepted"
	ApprovalRejected ApprovalStatus = "rejected"
)
