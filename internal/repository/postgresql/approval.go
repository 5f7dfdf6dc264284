package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/database"
)

type approvalRepository struct {
	db *database.DB
}

func NewApprovalRepository(db *database.DB) attendance.ApprovalRepository {
	return &approvalRepository{db: db}
}

// Get implements attendance.ApprovalRepository. A month with no approval
// record is treated as still pending.
func (a *approvalRepository) Get(ctx context.Context, employeeID string, month string) (attendance.ApprovalStatus, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT status
		FROM attendance_approvals
		WHERE employee_id = $1 AND month = $2
	`

	var status attendance.ApprovalStatus
	err := q.QueryRow(ctx, query, employeeID, month).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ApprovalPending, nil
		}
		return "", fmt.Errorf("failed to get attendance approval: %w", err)
	}

	return status, nil
}
