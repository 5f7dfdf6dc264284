package payroll

import "context"

// PayrollService derives payroll rows from a month of attendance plus
// the salary structure and loan registry, and manages crediting.
type PayrollService interface {
	// GenerateMonth recalculates a row for each requested employee (all
	// active when none given) and upserts it. Credited rows are left
	// untouched.
	GenerateMonth(ctx context.Context, req GenerateRequest) ([]RowResponse, error)

	GetRow(ctx context.Context, id string) (RowResponse, error)
	ListRows(ctx context.Context, month string) ([]RowResponse, error)

	// OverrideLoanDeduction replaces the computed loan figure and reruns
	// the derivation from the earnings step down.
	OverrideLoanDeduction(ctx context.Context, req LoanOverrideRequest) (RowResponse, error)

	// Credit marks the row paid. It fails with ErrAttendanceNotAccepted
	// unless the month's attendance approval is accepted, and with
	// ErrAlreadyCredited when the row is no longer Pending.
	Credit(ctx context.Context, id string) (RowResponse, error)
}
