package attendance

import "context"

// TimesheetService computes and stores attendance days and monthly
// summaries.
type TimesheetService interface {
	// RecordDay runs the daily work-hour calculation for the request and
	// upserts the single record for (employee, date).
	RecordDay(ctx context.Context, req RecordDayRequest) (DayResponse, error)

	// ListDays returns the marked days of one employee+month.
	ListDays(ctx context.Context, filter MonthFilter) ([]DayResponse, error)

	// MonthlySummary recomputes the summary from the month's marked days,
	// persists it and returns the same value.
	MonthlySummary(ctx context.Context, filter MonthFilter) (MonthlySummaryResponse, error)

	// RecomputeMonth refreshes the stored summary for every employee with
	// marked days in the month. Used by the background refresh job.
	RecomputeMonth(ctx context.Context, month string) error
}
