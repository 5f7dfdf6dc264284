package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/domain/employee"
	"github.com/factoryhr/timepay-backend-go/internal/domain/leave"
	"github.com/factoryhr/timepay-backend-go/internal/domain/shift"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/validator"
)

type fakeAttendanceRepo struct {
	days map[string]attendance.Day // keyed employeeID|date
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{days: make(map[string]attendance.Day)}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, day attendance.Day) (attendance.Day, error) {
	key := dayKey(day.EmployeeID, day.Date)
	if existing, ok := f.days[key]; ok {
		day.ID = existing.ID
	} else {
		day.ID = "day-" + key
	}
	f.days[key] = day
	return day, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Day, error) {
	day, ok := f.days[dayKey(employeeID, date)]
	if !ok {
		return attendance.Day{}, attendance.ErrDayNotFound
	}
	return day, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeMonth(ctx context.Context, employeeID string, month string) ([]attendance.Day, error) {
	var out []attendance.Day
	for _, day := range f.days {
		if day.EmployeeID == employeeID && day.Date.Format("2006-01") == month {
			out = append(out, day)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListEmployeesWithDays(ctx context.Context, month string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, day := range f.days {
		if day.Date.Format("2006-01") == month && !seen[day.EmployeeID] {
			seen[day.EmployeeID] = true
			out = append(out, day.EmployeeID)
		}
	}
	return out, nil
}

type fakeSummaryRepo struct {
	summaries map[string]attendance.MonthlySummary
}

func (f *fakeSummaryRepo) Upsert(ctx context.Context, summary attendance.MonthlySummary) error {
	f.summaries[summary.EmployeeID+"|"+summary.Month] = summary
	return nil
}

func (f *fakeSummaryRepo) Get(ctx context.Context, employeeID string, month string) (attendance.MonthlySummary, error) {
	summary, ok := f.summaries[employeeID+"|"+month]
	if !ok {
		return attendance.MonthlySummary{}, attendance.ErrSummaryNotFound
	}
	return summary, nil
}

type fakeLeaveRepo struct {
	ranges []leave.Range
}

func (f *fakeLeaveRepo) GetApprovedCovering(ctx context.Context, employeeID string, date time.Time) ([]leave.Range, error) {
	var out []leave.Range
	for _, r := range f.ranges {
		if r.EmployeeID == employeeID && r.Covers(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, nil
}

type timesheetFixture struct {
	svc       attendance.TimesheetService
	att       *fakeAttendanceRepo
	summaries *fakeSummaryRepo
	leaves    *fakeLeaveRepo
}

func newTimesheetFixture(dept employee.Department) *timesheetFixture {
	att := newFakeAttendanceRepo()
	summaries := &fakeSummaryRepo{summaries: make(map[string]attendance.MonthlySummary)}
	leaves := &fakeLeaveRepo{}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", Code: "E001", Name: "Test Employee", Department: dept, IsActive: true},
	}}

	return &timesheetFixture{
		svc:       NewTimesheetService(att, summaries, leaves, employees, shift.DefaultRules()),
		att:       att,
		summaries: summaries,
		leaves:    leaves,
	}
}

func TestRecordDayComputesAndStores(t *testing.T) {
	f := newTimesheetFixture(employee.DepartmentWorker)

	resp, err := f.svc.RecordDay(context.Background(), attendance.RecordDayRequest{
		EmployeeID: "emp-1",
		Date:       "2026-04-01",
		Status:     "Present",
		ShiftType:  "day",
		CheckIn:    punch("10:00 AM"),
		LunchIn:    punch("1:00 PM"),
		LunchOut:   punch("1:30 PM"),
		CheckOut:   punch("6:30 PM"),
	})
	require.NoError(t, err)

	assert.Equal(t, 8.5, resp.WorkHrs)
	assert.Equal(t, "8:30", resp.WorkTime)
	assert.Equal(t, "+0:00", resp.OvertimeTime)
	assert.Equal(t, "0:00", resp.PendingTime)

	stored, err := f.att.GetByEmployeeAndDate(context.Background(), "emp-1", mustDate(t, "2026-04-01"))
	require.NoError(t, err)
	assert.Equal(t, 8.5, stored.WorkHrs)
}

func TestRecordDayOverwritesExistingRecord(t *testing.T) {
	f := newTimesheetFixture(employee.DepartmentWorker)
	ctx := context.Background()

	req := attendance.RecordDayRequest{
		EmployeeID: "emp-1",
		Date:       "2026-04-01",
		Status:     "Present",
		ShiftType:  "day",
		CheckIn:    punch("10:00 AM"),
		CheckOut:   punch("2:00 PM"),
	}
	first, err := f.svc.RecordDay(ctx, req)
	require.NoError(t, err)

	req.CheckOut = punch("6:30 PM")
	second, err := f.svc.RecordDay(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "re-recording a day must replace, not append")
	assert.Equal(t, 8.5, second.WorkHrs)

	days, err := f.att.ListByEmployeeMonth(ctx, "emp-1", "2026-04")
	require.NoError(t, err)
	assert.Len(t, days, 1)
}

func TestRecordDayValidation(t *testing.T) {
	f := newTimesheetFixture(employee.DepartmentWorker)

	_, err := f.svc.RecordDay(context.Background(), attendance.RecordDayRequest{
		EmployeeID: "emp-1",
		Date:       "01-04-2026",
		Status:     "Working",
		ShiftType:  "day",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := verrs.ToMap()
	assert.Contains(t, details, "date")
	assert.Contains(t, details, "status")
}

func TestRecordDayUnknownEmployee(t *testing.T) {
	f := newTimesheetFixture(employee.DepartmentWorker)

	_, err := f.svc.RecordDay(context.Background(), attendance.RecordDayRequest{
		EmployeeID: "ghost",
		Date:       "2026-04-01",
		Status:     "Present",
		ShiftType:  "day",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestRecordDayAbsentInsideApprovedLeaveBecomesLeave(t *testing.T) {
	f := newTimesheetFixture(employee.DepartmentWorker)
	f.leaves.ranges = []leave.Range{{
		ID:         "lr-1",
		EmployeeID: "emp-1",
		StartDate:  mustDate(t, "2026-04-01"),
		EndDate:    mustDate(t, "2026-04-03"),
		Status:     "approved",
	}}

	resp, err := f.svc.RecordDay(context.Background(), attendance.RecordDayRequest{
		EmployeeID: "emp-1",
		Date:       "2026-04-02",
		Status:     "Absent",
		ShiftType:  "day",
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLeave), resp.Status)

	// The same marking outside the range stays Absent.
	resp, err = f.svc.RecordDay(context.Background(), attendance.RecordDayRequest{
		EmployeeID: "emp-1",
		Date:       "2026-04-10",
		Status:     "Absent",
		ShiftType:  "day",
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusAbsent), resp.Status)
}

func TestMonthlySummaryPersistsWhatItReturns(t *testing.T) {
	f := newTimesheetFixture(employee.DepartmentStaff)
	ctx := context.Background()

	for _, date := range []string{"2026-03-02", "2026-03-03", "2026-03-04"} {
		_, err := f.svc.RecordDay(ctx, attendance.RecordDayRequest{
			EmployeeID: "emp-1",
			Date:       date,
			Status:     "Present",
			ShiftType:  "day",
			CheckIn:    punch("10:00 AM"),
			CheckOut:   punch("6:30 PM"),
		})
		require.NoError(t, err)
	}
	// Sunday the 1st, Staff department: fixed allowance accrues.
	_, err := f.svc.RecordDay(ctx, attendance.RecordDayRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-01",
		Status:     "Present",
		ShiftType:  "sunday",
		CheckIn:    punch("9:00 AM"),
		CheckOut:   punch("1:00 PM"),
	})
	require.NoError(t, err)

	resp, err := f.svc.MonthlySummary(ctx, attendance.MonthFilter{EmployeeID: "emp-1", Month: "2026-03"})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.PresentDays)
	assert.Equal(t, 4, resp.FullWorkingDays)
	assert.InDelta(t, 29.5, resp.TotalWorkHrs, 1e-9)
	assert.True(t, resp.SundayAllowance.Equal(decimal.NewFromInt(500)))

	stored, err := f.summaries.Get(ctx, "emp-1", "2026-03")
	require.NoError(t, err)
	assert.Equal(t, resp.PresentDays, stored.PresentDays)
	assert.Equal(t, resp.TotalWorkHrs, stored.TotalWorkHrs)
}

func TestRecomputeMonthRefreshesAllEmployees(t *testing.T) {
	f := newTimesheetFixture(employee.DepartmentWorker)
	ctx := context.Background()

	_, err := f.svc.RecordDay(ctx, attendance.RecordDayRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-02",
		Status:     "Present",
		ShiftType:  "day",
		CheckIn:    punch("10:00 AM"),
		CheckOut:   punch("6:30 PM"),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.RecomputeMonth(ctx, "2026-03"))

	stored, err := f.summaries.Get(ctx, "emp-1", "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.PresentDays)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return date
}
