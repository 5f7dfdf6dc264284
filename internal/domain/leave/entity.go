package leave

import "time"

type RangeStatus string

const (
	RangeStatusPending  RangeStatus = "pending"
	RangeStatusApproved RangeStatus = "approved"
	RangeStatusRejected RangeStatus = "rejected"
)

// Range is an approved-leave date span for one employee, consumed
// read-only when recording attendance days.
type Range struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Status     RangeStatus
	Reason     *string
	CreatedAt  time.Time
}

// Covers reports whether date falls inside the range (inclusive).
func (r Range) Covers(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(r.StartDate.Truncate(24*time.Hour)) && !d.After(r.EndDate.Truncate(24*time.Hour))
}
