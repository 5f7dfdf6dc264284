package postgresql

import (
	"context"
	"fmt"

	"github.com/factoryhr/timepay-backend-go/internal/domain/payroll"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/database"
)

type loanRepository struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) payroll.LoanRepository {
	return &loanRepository{db: db}
}

// GetByEmployee implements payroll.LoanRepository. Skip-EMI requests
// live in their own table keyed by (loan_id, month) and are folded into
// each loan's map.
func (l *loanRepository) GetByEmployee(ctx context.Context, employeeID string) ([]payroll.Loan, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, amount, emi_amount, emi_months, status, created_at, updated_at
		FROM loans
		WHERE employee_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []payroll.Loan
	byID := make(map[string]int)
	for rows.Next() {
		var loan payroll.Loan
		if err := rows.Scan(
			&loan.ID, &loan.EmployeeID, &loan.Amount, &loan.EMIAmount,
			&loan.EMIMonths, &loan.Status, &loan.CreatedAt, &loan.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loan.SkipEMIRequests = make(map[string]payroll.SkipRequest)
		byID[loan.ID] = len(loans)
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read loans: %w", err)
	}

	if len(loans) == 0 {
		return loans, nil
	}

	skipQuery := `
		SELECT s.loan_id, s.month, s.status, s.reason, s.requested_at
		FROM loan_skip_requests s
		JOIN loans l ON l.id = s.loan_id
		WHERE l.employee_id = $1
	`

	skipRows, err := q.Query(ctx, skipQuery, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skip-emi requests: %w", err)
	}
	defer skipRows.Close()

	for skipRows.Next() {
		var loanID, month string
		var req payroll.SkipRequest
		if err := skipRows.Scan(&loanID, &month, &req.Status, &req.Reason, &req.RequestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skip-emi request: %w", err)
		}
		if idx, ok := byID[loanID]; ok {
			loans[idx].SkipEMIRequests[month] = req
		}
	}
	if err := skipRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skip-emi requests: %w", err)
	}

	return loans, nil
}
