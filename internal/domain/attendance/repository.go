package attendance

import (
	"context"
	"time"
)

// AttendanceRepository stores computed attendance days. Upsert is keyed
// on (employee_id, date) so exactly one record can exist per employee
// per day; re-recording a day replaces the previous figures in place.
type AttendanceRepository interface {
	Upsert(ctx context.Context, day Day) (Day, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Day, error)

	// ListByEmployeeMonth returns the marked days of one employee+month,
	// ordered by date. Missing calendar days are simply absent from the
	// result (unmarked).
	ListByEmployeeMonth(ctx context.Context, employeeID string, month string) ([]Day, error)

	// ListEmployeesWithDays returns the distinct employee IDs that have
	// at least one marked day in the month.
	ListEmployeesWithDays(ctx context.Context, month string) ([]string, error)
}

// SummaryRepository persists derived monthly summaries. The aggregator
// recomputes and overwrites; nothing updates a summary in place.
type SummaryRepository interface {
	Upsert(ctx context.Context, summary MonthlySummary) error
	Get(ctx context.Context, employeeID string, month string) (MonthlySummary, error)
}

// ApprovalRepository reads the per-(employee,month) attendance approval
// state that gates payroll crediting.
type ApprovalRepository interface {
	Get(ctx context.Context, employeeID string, month string) (ApprovalStatus, error)
}
