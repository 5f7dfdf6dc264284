package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/database"
)

type summaryRepository struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &summaryRepository{db: db}
}

// Upsert implements attendance.SummaryRepository. Summaries are fully
// derived, so the write always replaces the whole row for the
// (employee_id, month) key.
func (s *summaryRepository) Upsert(ctx context.Context, summary attendance.MonthlySummary) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO monthly_summaries (
			employee_id, month, present_days, absent_days, half_days,
			leave_days, holiday_days, week_off_days, marked_days,
			full_working_days, total_work_hrs, total_ot_hrs,
			total_pending_hrs, sunday_allowance, sunday_ot_hours,
			sunday_ot_amount, computed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			present_days = EXCLUDED.present_days,
			absent_days = EXCLUDED.absent_days,
			half_days = EXCLUDED.half_days,
			leave_days = EXCLUDED.leave_days,
			holiday_days = EXCLUDED.holiday_days,
			week_off_days = EXCLUDED.week_off_days,
			marked_days = EXCLUDED.marked_days,
			full_working_days = EXCLUDED.full_working_days,
			total_work_hrs = EXCLUDED.total_work_hrs,
			total_ot_hrs = EXCLUDED.total_ot_hrs,
			total_pending_hrs = EXCLUDED.total_pending_hrs,
			sunday_allowance = EXCLUDED.sunday_allowance,
			sunday_ot_hours = EXCLUDED.sunday_ot_hours,
			sunday_ot_amount = EXCLUDED.sunday_ot_amount,
			computed_at = EXCLUDED.computed_at
	`

	_, err := q.Exec(ctx, query,
		summary.EmployeeID,
		summary.Month,
		summary.PresentDays,
		summary.AbsentDays,
		summary.HalfDays,
		summary.LeaveDays,
		summary.HolidayDays,
		summary.WeekOffDays,
		summary.MarkedDays,
		summary.FullWorkingDays,
		summary.TotalWorkHrs,
		summary.TotalOtHrs,
		summary.TotalPendingHrs,
		summary.SundayAllowance,
		summary.SundayOtHours,
		summary.SundayOtAmount,
		summary.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert monthly summary: %w", err)
	}

	return nil
}

// Get implements attendance.SummaryRepository.
func (s *summaryRepository) Get(ctx context.Context, employeeID string, month string) (attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT employee_id, month, present_days, absent_days, half_days,
			   leave_days, holiday_days, week_off_days, marked_days,
			   full_working_days, total_work_hrs, total_ot_hrs,
			   total_pending_hrs, sunday_allowance, sunday_ot_hours,
			   sunday_ot_amount, computed_at
		FROM monthly_summaries
		WHERE employee_id = $1 AND month = $2
	`

	var summary attendance.MonthlySummary
	err := q.QueryRow(ctx, query, employeeID, month).Scan(
		&summary.EmployeeID, &summary.Month, &summary.PresentDays,
		&summary.AbsentDays, &summary.HalfDays, &summary.LeaveDays,
		&summary.HolidayDays, &summary.WeekOffDays, &summary.MarkedDays,
		&summary.FullWorkingDays, &summary.TotalWorkHrs, &summary.TotalOtHrs,
		&summary.TotalPendingHrs, &summary.SundayAllowance,
		&summary.SundayOtHours, &summary.SundayOtAmount, &summary.ComputedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.MonthlySummary{}, attendance.ErrSummaryNotFound
		}
		return attendance.MonthlySummary{}, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	return summary, nil
}
