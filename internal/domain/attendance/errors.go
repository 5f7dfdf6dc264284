package attendance

import "errors"

var (
	ErrDayNotFound     = errors.New("attendance record not found")
	ErrSummaryNotFound = errors.New("monthly summary not found")
	ErrUnknownShift    = errors.New("unknown shift type")
)
