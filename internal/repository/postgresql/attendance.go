package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Upsert implements attendance.AttendanceRepository. The unique key on
// (employee_id, date) makes re-recording a day an in-place replacement,
// so duplicates cannot exist regardless of caller behavior.
func (a *attendanceRepository) Upsert(ctx context.Context, day attendance.Day) (attendance.Day, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_days (
			id, employee_id, date, status, shift_type,
			check_in, lunch_in, lunch_out, check_out,
			work_hrs, ot_hrs, pending_hrs
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			shift_type = EXCLUDED.shift_type,
			check_in = EXCLUDED.check_in,
			lunch_in = EXCLUDED.lunch_in,
			lunch_out = EXCLUDED.lunch_out,
			check_out = EXCLUDED.check_out,
			work_hrs = EXCLUDED.work_hrs,
			ot_hrs = EXCLUDED.ot_hrs,
			pending_hrs = EXCLUDED.pending_hrs,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		day.EmployeeID,
		day.Date,
		day.Status,
		day.ShiftType,
		day.CheckIn,
		day.LunchIn,
		day.LunchOut,
		day.CheckOut,
		day.WorkHrs,
		day.OtHrs,
		day.PendingHrs,
	).Scan(&day.ID, &day.CreatedAt, &day.UpdatedAt)

	if err != nil {
		return attendance.Day{}, fmt.Errorf("failed to upsert attendance day: %w", err)
	}

	return day, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Day, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, status, shift_type,
			   check_in, lunch_in, lunch_out, check_out,
			   work_hrs, ot_hrs, pending_hrs, created_at, updated_at
		FROM attendance_days
		WHERE employee_id = $1 AND date = $2
	`

	var day attendance.Day
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&day.ID, &day.EmployeeID, &day.Date, &day.Status, &day.ShiftType,
		&day.CheckIn, &day.LunchIn, &day.LunchOut, &day.CheckOut,
		&day.WorkHrs, &day.OtHrs, &day.PendingHrs, &day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Day{}, attendance.ErrDayNotFound
		}
		return attendance.Day{}, fmt.Errorf("failed to get attendance day: %w", err)
	}

	return day, nil
}

// ListByEmployeeMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, month string) ([]attendance.Day, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT d.id, d.employee_id, d.date, d.status, d.shift_type,
			   d.check_in, d.lunch_in, d.lunch_out, d.check_out,
			   d.work_hrs, d.ot_hrs, d.pending_hrs, d.created_at, d.updated_at,
			   e.name
		FROM attendance_days d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1
		  AND to_char(d.date, 'YYYY-MM') = $2
		ORDER BY d.date
	`

	rows, err := q.Query(ctx, query, employeeID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance days: %w", err)
	}
	defer rows.Close()

	var days []attendance.Day
	for rows.Next() {
		var day attendance.Day
		if err := rows.Scan(
			&day.ID, &day.EmployeeID, &day.Date, &day.Status, &day.ShiftType,
			&day.CheckIn, &day.LunchIn, &day.LunchOut, &day.CheckOut,
			&day.WorkHrs, &day.OtHrs, &day.PendingHrs, &day.CreatedAt, &day.UpdatedAt,
			&day.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance days: %w", err)
	}

	return days, nil
}

// ListEmployeesWithDays implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListEmployeesWithDays(ctx context.Context, month string) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT DISTINCT employee_id
		FROM attendance_days
		WHERE to_char(date, 'YYYY-MM') = $1
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees with attendance: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee ids: %w", err)
	}

	return ids, nil
}
