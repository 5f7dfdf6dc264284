package payroll

import "context"

// PayrollRepository persists derived payroll rows, keyed on
// (employee_id, month).
type PayrollRepository interface {
	Upsert(ctx context.Context, row Row) (Row, error)

	GetByID(ctx context.Context, id string) (Row, error)
	GetByEmployeeMonth(ctx context.Context, employeeID string, month string) (Row, error)
	ListByMonth(ctx context.Context, month string) ([]Row, error)

	// Credit flips Pending → Credited as a conditional write: the UPDATE
	// matches only rows still Pending, and zero affected rows surfaces
	// ErrAlreadyCredited. Concurrent submissions cannot double-credit.
	Credit(ctx context.Context, id string) error
}

// LoanRepository reads the loan/EMI registry.
type LoanRepository interface {
	GetByEmployee(ctx context.Context, employeeID string) ([]Loan, error)
}
