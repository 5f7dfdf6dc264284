package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/factoryhr/timepay-backend-go/internal/domain/payroll"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.month,
	p.present_days, p.half_days, p.leave_days, p.absent_days,
	p.payable_days, p.holiday_count, p.total_pending_hrs,
	p.per_day_rate, p.present_pay, p.half_day_pay, p.leave_pay, p.holiday_pay,
	p.base_earnings, p.earning_ratio,
	p.basic, p.hra, p.conveyance, p.other_allowance, p.special_allowance,
	p.additional_special_allowance, p.total_gross_earnings,
	p.pf, p.esi, p.loan_deduction, p.loan_override, p.leave_deduction,
	p.total_deductions, p.total_earnings, p.net_payable,
	p.status, p.credited_at, p.created_at, p.updated_at
`

func scanPayrollRow(row pgx.Row, withEmployee bool) (payroll.Row, error) {
	var r payroll.Row
	dest := []any{
		&r.ID, &r.EmployeeID, &r.Month,
		&r.PresentDays, &r.HalfDays, &r.LeaveDays, &r.AbsentDays,
		&r.PayableDays, &r.HolidayCount, &r.TotalPendingHrs,
		&r.PerDayRate, &r.PresentPay, &r.HalfDayPay, &r.LeavePay, &r.HolidayPay,
		&r.BaseEarnings, &r.EarningRatio,
		&r.Basic, &r.HRA, &r.Conveyance, &r.OtherAllowance, &r.SpecialAllowance,
		&r.AdditionalSpecialAllowance, &r.TotalGrossEarnings,
		&r.PF, &r.ESI, &r.LoanDeduction, &r.LoanOverride, &r.LeaveDeduction,
		&r.TotalDeductions, &r.TotalEarnings, &r.NetPayable,
		&r.Status, &r.CreditedAt, &r.CreatedAt, &r.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &r.EmployeeName, &r.EmployeeCode)
	}
	return r, row.Scan(dest...)
}

// Upsert implements payroll.PayrollRepository. Keyed on
// (employee_id, month); regeneration replaces the derived figures but
// never the status or credited_at, which only Credit may touch.
func (p *payrollRepository) Upsert(ctx context.Context, row payroll.Row) (payroll.Row, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_rows (
			id, employee_id, month,
			present_days, half_days, leave_days, absent_days,
			payable_days, holiday_count, total_pending_hrs,
			per_day_rate, present_pay, half_day_pay, leave_pay, holiday_pay,
			base_earnings, earning_ratio,
			basic, hra, conveyance, other_allowance, special_allowance,
			additional_special_allowance, total_gross_earnings,
			pf, esi, loan_deduction, loan_override, leave_deduction,
			total_deductions, total_earnings, net_payable, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33
		)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			present_days = EXCLUDED.present_days,
			half_days = EXCLUDED.half_days,
			leave_days = EXCLUDED.leave_days,
			absent_days = EXCLUDED.absent_days,
			payable_days = EXCLUDED.payable_days,
			holiday_count = EXCLUDED.holiday_count,
			total_pending_hrs = EXCLUDED.total_pending_hrs,
			per_day_rate = EXCLUDED.per_day_rate,
			present_pay = EXCLUDED.present_pay,
			half_day_pay = EXCLUDED.half_day_pay,
			leave_pay = EXCLUDED.leave_pay,
			holiday_pay = EXCLUDED.holiday_pay,
			base_earnings = EXCLUDED.base_earnings,
			earning_ratio = EXCLUDED.earning_ratio,
			basic = EXCLUDED.basic,
			hra = EXCLUDED.hra,
			conveyance = EXCLUDED.conveyance,
			other_allowance = EXCLUDED.other_allowance,
			special_allowance = EXCLUDED.special_allowance,
			additional_special_allowance = EXCLUDED.additional_special_allowance,
			total_gross_earnings = EXCLUDED.total_gross_earnings,
			pf = EXCLUDED.pf,
			esi = EXCLUDED.esi,
			loan_deduction = EXCLUDED.loan_deduction,
			loan_override = EXCLUDED.loan_override,
			leave_deduction = EXCLUDED.leave_deduction,
			total_deductions = EXCLUDED.total_deductions,
			total_earnings = EXCLUDED.total_earnings,
			net_payable = EXCLUDED.net_payable,
			updated_at = NOW()
		WHERE payroll_rows.status = 'Pending'
		RETURNING id, status, credited_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.NewString(), row.EmployeeID, row.Month,
		row.PresentDays, row.HalfDays, row.LeaveDays, row.AbsentDays,
		row.PayableDays, row.HolidayCount, row.TotalPendingHrs,
		row.PerDayRate, row.PresentPay, row.HalfDayPay, row.LeavePay, row.HolidayPay,
		row.BaseEarnings, row.EarningRatio,
		row.Basic, row.HRA, row.Conveyance, row.OtherAllowance, row.SpecialAllowance,
		row.AdditionalSpecialAllowance, row.TotalGrossEarnings,
		row.PF, row.ESI, row.LoanDeduction, row.LoanOverride, row.LeaveDeduction,
		row.TotalDeductions, row.TotalEarnings, row.NetPayable, row.Status,
	).Scan(&row.ID, &row.Status, &row.CreditedAt, &row.CreatedAt, &row.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			// The guarded upsert matched a row that is no longer Pending.
			return payroll.Row{}, payroll.ErrAlreadyCredited
		}
		return payroll.Row{}, fmt.Errorf("failed to upsert payroll row: %w", err)
	}

	return row, nil
}

// GetByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Row, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollColumns + `, e.name, e.code
		FROM payroll_rows p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	row, err := scanPayrollRow(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Row{}, payroll.ErrRowNotFound
		}
		return payroll.Row{}, fmt.Errorf("failed to get payroll row: %w", err)
	}

	return row, nil
}

// GetByEmployeeMonth implements payroll.PayrollRepository.
func (p *payrollRepository) GetByEmployeeMonth(ctx context.Context, employeeID string, month string) (payroll.Row, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_rows p
		WHERE p.employee_id = $1 AND p.month = $2
	`

	row, err := scanPayrollRow(q.QueryRow(ctx, query, employeeID, month), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Row{}, payroll.ErrRowNotFound
		}
		return payroll.Row{}, fmt.Errorf("failed to get payroll row: %w", err)
	}

	return row, nil
}

// ListByMonth implements payroll.PayrollRepository.
func (p *payrollRepository) ListByMonth(ctx context.Context, month string) ([]payroll.Row, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollColumns + `, e.name, e.code
		FROM payroll_rows p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.month = $1
		ORDER BY e.code
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll rows: %w", err)
	}
	defer rows.Close()

	var result []payroll.Row
	for rows.Next() {
		r, err := scanPayrollRow(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll row: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payroll rows: %w", err)
	}

	return result, nil
}

// Credit implements payroll.PayrollRepository. The UPDATE is
// conditional on the row still being Pending; zero affected rows means
// a concurrent (or earlier) submission already credited it.
func (p *payrollRepository) Credit(ctx context.Context, id string) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_rows
		SET status = 'Credited', credited_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'Pending'
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to credit payroll row: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payroll_rows WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check payroll row: %w", err)
		}
		if !exists {
			return payroll.ErrRowNotFound
		}
		return payroll.ErrAlreadyCredited
	}

	return nil
}
