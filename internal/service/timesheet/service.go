package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/domain/employee"
	"github.com/factoryhr/timepay-backend-go/internal/domain/leave"
	"github.com/factoryhr/timepay-backend-go/internal/domain/shift"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/timefmt"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/validator"
)

type TimesheetServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	summaryRepo    attendance.SummaryRepository
	leaveRepo      leave.LeaveRepository
	employeeRepo   employee.EmployeeRepository
	calculator     *Calculator
	aggregator     *Aggregator
}

func NewTimesheetService(
	attendanceRepo attendance.AttendanceRepository,
	summaryRepo attendance.SummaryRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	rules shift.Rules,
) attendance.TimesheetService {
	return &TimesheetServiceImpl{
		attendanceRepo: attendanceRepo,
		summaryRepo:    summaryRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		calculator:     NewCalculator(rules),
		aggregator:     NewAggregator(rules),
	}
}

// RecordDay implements attendance.TimesheetService.
func (s *TimesheetServiceImpl) RecordDay(ctx context.Context, req attendance.RecordDayRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.DayResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.DayResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	status := attendance.Status(req.Status)

	// A day marked Absent that falls inside an approved leave range is
	// recorded as Leave so the payroll run prices it under the leave
	// policy instead of as an absence.
	if status == attendance.StatusAbsent {
		ranges, err := s.leaveRepo.GetApprovedCovering(ctx, req.EmployeeID, date)
		if err != nil {
			return attendance.DayResponse{}, fmt.Errorf("failed to check approved leaves: %w", err)
		}
		if len(ranges) > 0 {
			status = attendance.StatusLeave
		}
	}

	result, err := s.calculator.ComputeDay(DayInput{
		Status:   status,
		Shift:    shift.Type(req.ShiftType),
		CheckIn:  req.CheckIn,
		LunchIn:  req.LunchIn,
		LunchOut: req.LunchOut,
		CheckOut: req.CheckOut,
	})
	if err != nil {
		return attendance.DayResponse{}, err
	}

	day := attendance.Day{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     status,
		ShiftType:  shift.Type(req.ShiftType),
		CheckIn:    req.CheckIn,
		LunchIn:    req.LunchIn,
		LunchOut:   req.LunchOut,
		CheckOut:   req.CheckOut,
		WorkHrs:    result.WorkHrs,
		OtHrs:      result.OtHrs,
		PendingHrs: result.PendingHrs,
	}

	saved, err := s.attendanceRepo.Upsert(ctx, day)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to upsert attendance day: %w", err)
	}

	return mapDayToResponse(saved), nil
}

// ListDays implements attendance.TimesheetService.
func (s *TimesheetServiceImpl) ListDays(ctx context.Context, filter attendance.MonthFilter) ([]attendance.DayResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	days, err := s.attendanceRepo.ListByEmployeeMonth(ctx, filter.EmployeeID, filter.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance days: %w", err)
	}

	responses := make([]attendance.DayResponse, 0, len(days))
	for _, day := range days {
		responses = append(responses, mapDayToResponse(day))
	}
	return responses, nil
}

// MonthlySummary implements attendance.TimesheetService. The summary is
// recomputed from the month's marked days and persisted before being
// returned; the stored and returned values are identical. The write is
// not transactional with concurrent recomputations, which is acceptable
// because identical inputs yield identical output.
func (s *TimesheetServiceImpl) MonthlySummary(ctx context.Context, filter attendance.MonthFilter) (attendance.MonthlySummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	summary, err := s.computeAndStoreSummary(ctx, filter.EmployeeID, filter.Month)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	return mapSummaryToResponse(summary), nil
}

// RecomputeMonth implements attendance.TimesheetService.
func (s *TimesheetServiceImpl) RecomputeMonth(ctx context.Context, month string) error {
	if _, ok := validator.IsValidMonth(month); !ok {
		return validator.ValidationErrors{{Field: "month", Message: "must be a valid YYYY-MM month"}}
	}

	employeeIDs, err := s.attendanceRepo.ListEmployeesWithDays(ctx, month)
	if err != nil {
		return fmt.Errorf("failed to list employees with attendance: %w", err)
	}

	for _, employeeID := range employeeIDs {
		if _, err := s.computeAndStoreSummary(ctx, employeeID, month); err != nil {
			slog.Error("monthly summary recompute failed",
				"employee_id", employeeID, "month", month, "error", err)
		}
	}

	return nil
}

func (s *TimesheetServiceImpl) computeAndStoreSummary(ctx context.Context, employeeID, month string) (attendance.MonthlySummary, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.MonthlySummary{}, employee.ErrEmployeeNotFound
		}
		return attendance.MonthlySummary{}, fmt.Errorf("failed to get employee: %w", err)
	}

	days, err := s.attendanceRepo.ListByEmployeeMonth(ctx, employeeID, month)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to list attendance days: %w", err)
	}

	summary := s.aggregator.Summarize(employeeID, month, emp.Department, days)

	if err := s.summaryRepo.Upsert(ctx, summary); err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to store monthly summary: %w", err)
	}

	return summary, nil
}

func mapDayToResponse(day attendance.Day) attendance.DayResponse {
	employeeName := ""
	if day.EmployeeName != nil {
		employeeName = *day.EmployeeName
	}

	return attendance.DayResponse{
		ID:           day.ID,
		EmployeeID:   day.EmployeeID,
		EmployeeName: employeeName,
		Date:         day.Date.Format("2006-01-02"),
		Status:       string(day.Status),
		ShiftType:    string(day.ShiftType),
		CheckIn:      day.CheckIn,
		LunchIn:      day.LunchIn,
		LunchOut:     day.LunchOut,
		CheckOut:     day.CheckOut,
		WorkHrs:      day.WorkHrs,
		OtHrs:        day.OtHrs,
		PendingHrs:   day.PendingHrs,
		WorkTime:     timefmt.FormatHours(day.WorkHrs),
		OvertimeTime: timefmt.FormatHoursSigned(day.OtHrs),
		PendingTime:  timefmt.FormatHours(day.PendingHrs),
	}
}

func mapSummaryToResponse(summary attendance.MonthlySummary) attendance.MonthlySummaryResponse {
	return attendance.MonthlySummaryResponse{
		EmployeeID:      summary.EmployeeID,
		Month:           summary.Month,
		PresentDays:     summary.PresentDays,
		AbsentDays:      summary.AbsentDays,
		HalfDays:        summary.HalfDays,
		LeaveDays:       summary.LeaveDays,
		HolidayDays:     summary.HolidayDays,
		WeekOffDays:     summary.WeekOffDays,
		MarkedDays:      summary.MarkedDays,
		FullWorkingDays: summary.FullWorkingDays,
		TotalWorkHrs:    summary.TotalWorkHrs,
		TotalOtHrs:      summary.TotalOtHrs,
		TotalPendingHrs: summary.TotalPendingHrs,
		SundayAllowance: summary.SundayAllowance,
		SundayOtHours:   summary.SundayOtHours,
		SundayOtAmount:  summary.SundayOtAmount,
	}
}
