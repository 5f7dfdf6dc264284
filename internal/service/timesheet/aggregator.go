package timesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/domain/employee"
	"github.com/factoryhr/timepay-backend-go/internal/domain/shift"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/timefmt"
)

// Aggregator folds one employee+month of attendance days into a
// MonthlySummary. Pure; days absent from the slice are unmarked and
// contribute nothing.
type Aggregator struct {
	rules shift.Rules
}

func NewAggregator(rules shift.Rules) *Aggregator {
	return &Aggregator{rules: rules}
}

// Summarize recomputes the summary from scratch. Hour totals cover
// marked days only; full working days are Present days with no pending
// shortfall. Sunday compensation branches by department: Staff accrues a
// fixed allowance per Sunday present, every other department accrues the
// Sunday work+overtime hours priced at the hourly overtime rate.
func (a *Aggregator) Summarize(employeeID, month string, dept employee.Department, days []attendance.Day) attendance.MonthlySummary {
	summary := attendance.MonthlySummary{
		EmployeeID:      employeeID,
		Month:           month,
		SundayAllowance: decimal.Zero,
		SundayOtAmount:  decimal.Zero,
		ComputedAt:      time.Now().UTC(),
	}

	for _, day := range days {
		summary.MarkedDays++

		switch day.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
			if day.PendingHrs == 0 {
				summary.FullWorkingDays++
			}
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusHalfDay:
			summary.HalfDays++
		case attendance.StatusLeave:
			summary.LeaveDays++
		case attendance.StatusHoliday:
			summary.HolidayDays++
		case attendance.StatusWeekOff:
			summary.WeekOffDays++
		}

		summary.TotalWorkHrs += day.WorkHrs
		summary.TotalOtHrs += day.OtHrs
		summary.TotalPendingHrs += day.PendingHrs

		if day.IsSunday() && day.Status == attendance.StatusPresent {
			if dept == employee.DepartmentStaff {
				summary.SundayAllowance = summary.SundayAllowance.Add(a.rules.SundayAllowance)
			} else {
				summary.SundayOtHours += day.WorkHrs + day.OtHrs
			}
		}
	}

	summary.TotalWorkHrs = timefmt.Round4(summary.TotalWorkHrs)
	summary.TotalOtHrs = timefmt.Round4(summary.TotalOtHrs)
	summary.TotalPendingHrs = timefmt.Round4(summary.TotalPendingHrs)
	summary.SundayOtHours = timefmt.Round4(summary.SundayOtHours)

	summary.SundayAllowance = summary.SundayAllowance.Round(2)
	summary.SundayOtAmount = decimal.NewFromFloat(summary.SundayOtHours).
		Mul(a.rules.OvertimeHourlyRate).Round(2)

	return summary
}
