package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/domain/employee"
	"github.com/factoryhr/timepay-backend-go/internal/domain/holiday"
	"github.com/factoryhr/timepay-backend-go/internal/domain/payroll"
	"github.com/factoryhr/timepay-backend-go/internal/domain/shift"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/database"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/validator"
)

type PayrollServiceImpl struct {
	tx             database.TxRunner
	payrollRepo    payroll.PayrollRepository
	loanRepo       payroll.LoanRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	holidayRepo    holiday.HolidayRepository
	approvalRepo   attendance.ApprovalRepository
	rules          shift.Rules
}

func NewPayrollService(
	tx database.TxRunner,
	payrollRepo payroll.PayrollRepository,
	loanRepo payroll.LoanRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	holidayRepo holiday.HolidayRepository,
	approvalRepo attendance.ApprovalRepository,
	rules shift.Rules,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:             tx,
		payrollRepo:    payrollRepo,
		loanRepo:       loanRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		approvalRepo:   approvalRepo,
		rules:          rules,
	}
}

// GenerateMonth implements payroll.PayrollService. The whole batch runs
// inside one transaction so a failure partway leaves no half-generated
// month behind.
func (s *PayrollServiceImpl) GenerateMonth(ctx context.Context, req payroll.GenerateRequest) ([]payroll.RowResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var responses []payroll.RowResponse
	err := s.tx(ctx, func(ctx context.Context) error {
		var employees []employee.Employee
		if len(req.EmployeeIDs) > 0 {
			for _, id := range req.EmployeeIDs {
				emp, err := s.employeeRepo.GetByID(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to get employee %s: %w", id, err)
				}
				if !emp.IsActive {
					return fmt.Errorf("employee %s: %w", id, employee.ErrEmployeeInactive)
				}
				employees = append(employees, emp)
			}
		} else {
			var err error
			employees, err = s.employeeRepo.GetActive(ctx)
			if err != nil {
				return fmt.Errorf("failed to get active employees: %w", err)
			}
		}

		holidays, err := s.holidayRepo.GetByMonth(ctx, req.Month)
		if err != nil {
			return fmt.Errorf("failed to get holidays: %w", err)
		}

		for _, emp := range employees {
			// Credited rows are terminal; regeneration must not touch them.
			// An operator-entered loan override on an existing row survives
			// the recalculation.
			var override *decimal.Decimal
			existing, err := s.payrollRepo.GetByEmployeeMonth(ctx, emp.ID, req.Month)
			switch {
			case err == nil:
				if existing.Status == payroll.StatusCredited {
					continue
				}
				override = existing.LoanOverride
			case errors.Is(err, payroll.ErrRowNotFound):
				// First generation for this employee+month.
			default:
				return fmt.Errorf("failed to check existing payroll row: %w", err)
			}

			row, err := s.computeRowFor(ctx, emp, req.Month, holidays, override)
			if err != nil {
				return err
			}

			saved, err := s.payrollRepo.Upsert(ctx, row)
			if err != nil {
				return fmt.Errorf("failed to store payroll row for employee %s: %w", emp.ID, err)
			}
			responses = append(responses, mapRowToResponse(saved))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}

// GetRow implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetRow(ctx context.Context, id string) (payroll.RowResponse, error) {
	row, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RowResponse{}, err
	}
	return mapRowToResponse(row), nil
}

// ListRows implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListRows(ctx context.Context, month string) ([]payroll.RowResponse, error) {
	if _, ok := validator.IsValidMonth(month); !ok {
		return nil, validator.ValidationErrors{{Field: "month", Message: "must be a valid YYYY-MM month"}}
	}

	rows, err := s.payrollRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll rows: %w", err)
	}

	responses := make([]payroll.RowResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, mapRowToResponse(row))
	}
	return responses, nil
}

// OverrideLoanDeduction implements payroll.PayrollService. The override
// replaces the computed EMI figure and the whole earnings/deductions
// derivation reruns, so the stored row is always internally consistent.
func (s *PayrollServiceImpl) OverrideLoanDeduction(ctx context.Context, req payroll.LoanOverrideRequest) (payroll.RowResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RowResponse{}, err
	}

	var saved payroll.Row
	err := s.tx(ctx, func(ctx context.Context) error {
		existing, err := s.payrollRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if existing.Status == payroll.StatusCredited {
			return payroll.ErrAlreadyCredited
		}

		emp, err := s.employeeRepo.GetByID(ctx, existing.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		holidays, err := s.holidayRepo.GetByMonth(ctx, existing.Month)
		if err != nil {
			return fmt.Errorf("failed to get holidays: %w", err)
		}

		amount := req.Amount
		row, err := s.computeRowFor(ctx, emp, existing.Month, holidays, &amount)
		if err != nil {
			return err
		}

		saved, err = s.payrollRepo.Upsert(ctx, row)
		if err != nil {
			return fmt.Errorf("failed to store payroll row: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.RowResponse{}, err
	}
	return mapRowToResponse(saved), nil
}

// Credit implements payroll.PayrollService. The status transition is
// one-way and guarded twice: the service rejects rows whose month has
// not been accepted or that are already Credited, and the repository
// write is conditional on the row still being Pending so concurrent
// submissions cannot credit twice.
func (s *PayrollServiceImpl) Credit(ctx context.Context, id string) (payroll.RowResponse, error) {
	row, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RowResponse{}, err
	}
	if row.Status == payroll.StatusCredited {
		return payroll.RowResponse{}, payroll.ErrAlreadyCredited
	}

	approval, err := s.approvalRepo.Get(ctx, row.EmployeeID, row.Month)
	if err != nil {
		return payroll.RowResponse{}, fmt.Errorf("failed to get attendance approval: %w", err)
	}
	if approval != attendance.ApprovalAccepted {
		return payroll.RowResponse{}, payroll.ErrAttendanceNotAccepted
	}

	if err := s.payrollRepo.Credit(ctx, id); err != nil {
		return payroll.RowResponse{}, err
	}

	credited, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RowResponse{}, err
	}
	return mapRowToResponse(credited), nil
}

func (s *PayrollServiceImpl) computeRowFor(ctx context.Context, emp employee.Employee, month string, holidays []holiday.Holiday, override *decimal.Decimal) (payroll.Row, error) {
	days, err := s.attendanceRepo.ListByEmployeeMonth(ctx, emp.ID, month)
	if err != nil {
		return payroll.Row{}, fmt.Errorf("failed to list attendance for employee %s: %w", emp.ID, err)
	}

	loans, err := s.loanRepo.GetByEmployee(ctx, emp.ID)
	if err != nil {
		return payroll.Row{}, fmt.Errorf("failed to get loans for employee %s: %w", emp.ID, err)
	}

	return ComputeRow(RowInput{
		Employee:     emp,
		Month:        month,
		Days:         days,
		Loans:        loans,
		Holidays:     holidays,
		LoanOverride: override,
		Rules:        s.rules,
	}), nil
}

func mapRowToResponse(row payroll.Row) payroll.RowResponse {
	var creditedAt *string
	if row.CreditedAt != nil {
		str := row.CreditedAt.Format(time.RFC3339)
		creditedAt = &str
	}

	employeeName := ""
	employeeCode := ""
	if row.EmployeeName != nil {
		employeeName = *row.EmployeeName
	}
	if row.EmployeeCode != nil {
		employeeCode = *row.EmployeeCode
	}

	return payroll.RowResponse{
		ID:           row.ID,
		EmployeeID:   row.EmployeeID,
		EmployeeName: employeeName,
		EmployeeCode: employeeCode,
		Month:        row.Month,

		PresentDays:     row.PresentDays,
		HalfDays:        row.HalfDays,
		LeaveDays:       row.LeaveDays,
		AbsentDays:      row.AbsentDays,
		PayableDays:     row.PayableDays,
		HolidayCount:    row.HolidayCount,
		TotalPendingHrs: row.TotalPendingHrs,

		PerDayRate: row.PerDayRate,
		PresentPay: row.PresentPay,
		HalfDayPay: row.HalfDayPay,
		LeavePay:   row.LeavePay,
		HolidayPay: row.HolidayPay,

		BaseEarnings: row.BaseEarnings,
		EarningRatio: row.EarningRatio,

		Basic:                      row.Basic,
		HRA:                        row.HRA,
		Conveyance:                 row.Conveyance,
		OtherAllowance:             row.OtherAllowance,
		SpecialAllowance:           row.SpecialAllowance,
		AdditionalSpecialAllowance: row.AdditionalSpecialAllowance,
		TotalGrossEarnings:         row.TotalGrossEarnings,

		PF:              row.PF,
		ESI:             row.ESI,
		LoanDeduction:   row.LoanDeduction,
		LoanOverride:    row.LoanOverride,
		LeaveDeduction:  row.LeaveDeduction,
		TotalDeductions: row.TotalDeductions,
		TotalEarnings:   row.TotalEarnings,
		NetPayable:      row.NetPayable,

		Status:     string(row.Status),
		CreditedAt: creditedAt,
	}
}
