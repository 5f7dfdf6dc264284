package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/factoryhr/timepay-backend-go/internal/domain/leave"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// GetApprovedCovering implements leave.LeaveRepository.
func (l *leaveRepository) GetApprovedCovering(ctx context.Context, employeeID string, date time.Time) ([]leave.Range, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, start_date, end_date, status, reason, created_at
		FROM leave_ranges
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND start_date <= $2
		  AND end_date >= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leaves: %w", err)
	}
	defer rows.Close()

	var ranges []leave.Range
	for rows.Next() {
		var r leave.Range
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.StartDate, &r.EndDate, &r.Status, &r.Reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave range: %w", err)
		}
		ranges = append(ranges, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave ranges: %w", err)
	}

	return ranges, nil
}
