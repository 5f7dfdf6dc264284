package leave

import (
	"context"
	"time"
)

// LeaveRepository reads approved-leave ranges, keyed by employee.
type LeaveRepository interface {
	// GetApprovedCovering returns approved ranges for the employee that
	// contain the given date.
	GetApprovedCovering(ctx context.Context, employeeID string, date time.Time) ([]Range, error)
}
