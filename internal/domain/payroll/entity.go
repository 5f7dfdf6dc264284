package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status of a payroll row. Pending → Credited is one-way.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusCredited Status = "Credited"
)

// LoanStatus: only Approved loans deduct EMIs.
type LoanStatus string

const (
	LoanPending  LoanStatus = "Pending"
	LoanApproved LoanStatus = "Approved"
	LoanRejected LoanStatus = "Rejected"
	LoanClosed   LoanStatus = "Closed"
)

// SkipStatus of a skip-EMI request. Approved and Pending both suppress
// the month's EMI; a rejected request changes nothing.
type SkipStatus string

const (
	SkipPending  SkipStatus = "Pending"
	SkipApproved SkipStatus = "Approved"
	SkipRejected SkipStatus = "Rejected"
)

type SkipRequest struct {
	Status      SkipStatus
	Reason      *string
	RequestedAt time.Time
}

// Loan is one entry of the loan/EMI registry, read-only to the engine.
// SkipEMIRequests is keyed by "YYYY-MM".
type Loan struct {
	ID              string
	EmployeeID      string
	Amount          decimal.Decimal
	EMIAmount       decimal.Decimal
	EMIMonths       int
	Status          LoanStatus
	SkipEMIRequests map[string]SkipRequest
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SkipsEMIFor reports whether this loan's EMI is suppressed for the
// given month.
func (l Loan) SkipsEMIFor(month string) bool {
	req, ok := l.SkipEMIRequests[month]
	if !ok {
		return false
	}
	return req.Status == SkipApproved || req.Status == SkipPending
}

// Row is one fully derived payroll line per (employee, month). It is
// mutable only via full recalculation; the single exception is the
// operator-entered loan override, which itself forces a recalculation.
type Row struct {
	ID         string
	EmployeeID string
	Month      string // "YYYY-MM"

	// Attendance classification
	PresentDays     float64
	HalfDays        float64
	LeaveDays       float64
	AbsentDays      float64
	PayableDays     float64
	HolidayCount    int
	TotalPendingHrs float64

	// Derivation
	PerDayRate decimal.Decimal
	PresentPay decimal.Decimal
	HalfDayPay decimal.Decimal
	LeavePay   decimal.Decimal
	HolidayPay decimal.Decimal

	BaseEarnings decimal.Decimal
	EarningRatio decimal.Decimal

	Basic                      decimal.Decimal
	HRA                        decimal.Decimal
	Conveyance                 decimal.Decimal
	OtherAllowance             decimal.Decimal
	SpecialAllowance           decimal.Decimal
	AdditionalSpecialAllowance decimal.Decimal
	TotalGrossEarnings         decimal.Decimal

	PF                decimal.Decimal
	ESI               decimal.Decimal
	LoanDeduction     decimal.Decimal
	LoanOverride      *decimal.Decimal
	LeaveDeduction    decimal.Decimal
	TotalDeductions   decimal.Decimal
	TotalEarnings     decimal.Decimal
	NetPayable        decimal.Decimal

	Status     Status
	CreditedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined for listings
	EmployeeName *string
	EmployeeCode *string
}
