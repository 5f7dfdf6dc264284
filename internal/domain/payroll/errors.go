package payroll

import "errors"

var (
	ErrRowNotFound           = errors.New("payroll row not found")
	ErrAlreadyCredited       = errors.New("payroll row has already been credited")
	ErrAttendanceNotAccepted = errors.New("attendance for the month has not been accepted")
)
