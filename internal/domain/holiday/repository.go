package holiday

import "context"

// HolidayRepository reads the holiday calendar, keyed by "YYYY-MM" month.
type HolidayRepository interface {
	GetByMonth(ctx context.Context, month string) ([]Holiday, error)
}
