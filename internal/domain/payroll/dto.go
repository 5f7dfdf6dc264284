package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/factoryhr/timepay-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	Month       string   `json:"month"` // "2006-01"
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a valid YYYY-MM month"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoanOverrideRequest replaces the computed loan deduction for one row
// and forces the earnings/deductions derivation to rerun.
type LoanOverrideRequest struct {
	ID     string          `json:"-"`
	Amount decimal.Decimal `json:"amount"`
}

func (r *LoanOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RowResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Month        string `json:"month"`

	PresentDays     float64 `json:"present_days"`
	HalfDays        float64 `json:"half_days"`
	LeaveDays       float64 `json:"leave_days"`
	AbsentDays      float64 `json:"absent_days"`
	PayableDays     float64 `json:"payable_days"`
	HolidayCount    int     `json:"holiday_count"`
	TotalPendingHrs float64 `json:"total_pending_hrs"`

	PerDayRate decimal.Decimal `json:"per_day_rate"`
	PresentPay decimal.Decimal `json:"present_pay"`
	HalfDayPay decimal.Decimal `json:"half_day_pay"`
	LeavePay   decimal.Decimal `json:"leave_pay"`
	HolidayPay decimal.Decimal `json:"holiday_pay"`

	BaseEarnings decimal.Decimal `json:"base_earnings"`
	EarningRatio decimal.Decimal `json:"earning_ratio"`

	Basic                      decimal.Decimal `json:"basic"`
	HRA                        decimal.Decimal `json:"hra"`
	Conveyance                 decimal.Decimal `json:"conveyance"`
	OtherAllowance             decimal.Decimal `json:"other_allowance"`
	SpecialAllowance           decimal.Decimal `json:"special_allowance"`
	AdditionalSpecialAllowance decimal.Decimal `json:"additional_special_allowance"`
	TotalGrossEarnings         decimal.Decimal `json:"total_gross_earnings"`

	PF              decimal.Decimal  `json:"pf"`
	ESI             decimal.Decimal  `json:"esi"`
	LoanDeduction   decimal.Decimal  `json:"loan_deduction"`
	LoanOverride    *decimal.Decimal `json:"loan_override,omitempty"`
	LeaveDeduction  decimal.Decimal  `json:"leave_deduction"`
	TotalDeductions decimal.Decimal  `json:"total_deductions"`
	TotalEarnings   decimal.Decimal  `json:"total_earnings"`
	NetPayable      decimal.Decimal  `json:"net_payable"`

	Status     string  `json:"status"`
	CreditedAt *string `json:"credited_at,omitempty"`
}
