package employee

import "context"

// EmployeeRepository reads the employee directory. The engine never
// writes employees; they are maintained elsewhere.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetActive lists employees eligible for payroll generation.
	GetActive(ctx context.Context) ([]Employee, error)
}
