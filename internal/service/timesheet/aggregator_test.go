package timesheet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/domain/employee"
	"github.com/factoryhr/timepay-backend-go/internal/domain/shift"
)

func day(date string, status attendance.Status, work, ot, pending float64) attendance.Day {
	d, _ := time.Parse("2006-01-02", date)
	return attendance.Day{
		EmployeeID: "emp-1",
		Date:       d,
		Status:     status,
		ShiftType:  shift.TypeDay,
		WorkHrs:    work,
		OtHrs:      ot,
		PendingHrs: pending,
	}
}

func TestSummarizeCountsAndTotals(t *testing.T) {
	agg := NewAggregator(shift.DefaultRules())

	days := []attendance.Day{
		day("2026-03-02", attendance.StatusPresent, 8.5, 0, 0),
		day("2026-03-03", attendance.StatusPresent, 8.0, 0, 0.5),
		day("2026-03-04", attendance.StatusHalfDay, 4.25, 0, 4.25),
		day("2026-03-05", attendance.StatusAbsent, 0, 0, 8.5),
		day("2026-03-06", attendance.StatusLeave, 0, 0, 8.5),
		day("2026-03-07", attendance.StatusHoliday, 0, 0, 8.5),
		day("2026-03-09", attendance.StatusPresent, 8.5, 1.25, 0),
	}

	summary := agg.Summarize("emp-1", "2026-03", employee.DepartmentWorker, days)

	assert.Equal(t, "emp-1", summary.EmployeeID)
	assert.Equal(t, "2026-03", summary.Month)
	assert.Equal(t, 7, summary.MarkedDays)
	assert.Equal(t, 3, summary.PresentDays)
	assert.Equal(t, 1, summary.HalfDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.Equal(t, 1, summary.LeaveDays)
	assert.Equal(t, 1, summary.HolidayDays)
	assert.Equal(t, 0, summary.WeekOffDays)
	// Present days with zero pending only.
	assert.Equal(t, 2, summary.FullWorkingDays)

	assert.InDelta(t, 29.25, summary.TotalWorkHrs, 1e-9)
	assert.InDelta(t, 1.25, summary.TotalOtHrs, 1e-9)
	assert.InDelta(t, 30.25, summary.TotalPendingHrs, 1e-9)
}

func TestSummarizeSundayAllowanceForStaff(t *testing.T) {
	agg := NewAggregator(shift.DefaultRules())

	// 2026-03-01 and 2026-03-08 are Sundays.
	days := []attendance.Day{
		day("2026-03-01", attendance.StatusPresent, 4.0, 0, 0),
		day("2026-03-08", attendance.StatusPresent, 4.0, 0, 0),
		day("2026-03-15", attendance.StatusWeekOff, 0, 0, 0),
		day("2026-03-02", attendance.StatusPresent, 8.5, 0, 0),
	}

	summary := agg.Summarize("emp-1", "2026-03", employee.DepartmentStaff, days)

	assert.True(t, summary.SundayAllowance.Equal(decimal.NewFromInt(1000)),
		"got %s", summary.SundayAllowance)
	assert.Equal(t, 0.0, summary.SundayOtHours)
	assert.True(t, summary.SundayOtAmount.IsZero())
}

func TestSummarizeSundayHoursForWorkers(t *testing.T) {
	agg := NewAggregator(shift.DefaultRules())

	days := []attendance.Day{
		day("2026-03-01", attendance.StatusPresent, 4.0, 0.5, 0),
		day("2026-03-08", attendance.StatusPresent, 4.0, 0, 0),
	}

	summary := agg.Summarize("emp-1", "2026-03", employee.DepartmentWorker, days)

	assert.True(t, summary.SundayAllowance.IsZero())
	assert.InDelta(t, 8.5, summary.SundayOtHours, 1e-9)
	// 8.5 hours at the 60/hr overtime rate.
	assert.True(t, summary.SundayOtAmount.Equal(decimal.NewFromInt(510)),
		"got %s", summary.SundayOtAmount)
}

func TestSummarizeEmptyMonth(t *testing.T) {
	agg := NewAggregator(shift.DefaultRules())

	summary := agg.Summarize("emp-1", "2026-03", employee.DepartmentStaff, nil)

	assert.Equal(t, 0, summary.MarkedDays)
	assert.Equal(t, 0.0, summary.TotalWorkHrs)
	assert.True(t, summary.SundayAllowance.IsZero())
	assert.False(t, summary.ComputedAt.IsZero())
}
