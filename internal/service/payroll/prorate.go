package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/domain/employee"
	"github.com/factoryhr/timepay-backend-go/internal/domain/holiday"
	"github.com/factoryhr/timepay-backend-go/internal/domain/payroll"
	"github.com/factoryhr/timepay-backend-go/internal/domain/shift"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/timefmt"
)

// requiredDays is the attendance bar for the full-month snap: 26 in a
// 30-day (or shorter) month, 27 in a 31-day month, minus the month's
// applicable holidays.
const (
	requiredDaysShortMonth = 26
	requiredDaysLongMonth  = 27
)

var two = decimal.NewFromInt(2)

// RowInput is everything ComputeRow needs. All collaborator data is
// read-only; the function owns no storage and has no side effects, so
// identical inputs always derive the identical row.
type RowInput struct {
	Employee     employee.Employee
	Month        string // "YYYY-MM"
	Days         []attendance.Day
	Loans        []payroll.Loan
	Holidays     []holiday.Holiday
	LoanOverride *decimal.Decimal
	Rules        shift.Rules
}

// ComputeRow derives the full payroll line for one employee+month.
// Every monetary figure is rounded to 2 decimals at each derivation
// step. A zero monthly salary or an unparseable month degrades to zero
// rates and ratios rather than dividing by zero.
func ComputeRow(in RowInput) payroll.Row {
	row := payroll.Row{
		EmployeeID: in.Employee.ID,
		Month:      in.Month,
		Status:     payroll.StatusPending,
	}

	// 1. Classify the month's marked days.
	var presentDays, halfDays, leaveDays, absentDays float64
	var pendingHrs float64
	for _, day := range in.Days {
		switch day.Status {
		case attendance.StatusPresent:
			presentDays++
		case attendance.StatusHalfDay:
			halfDays++
		case attendance.StatusLeave:
			leaveDays++
		case attendance.StatusAbsent:
			absentDays++
		}
		if day.PendingHrs > 0 {
			pendingHrs += day.PendingHrs
		}
	}

	totalDaysInMonth := daysInMonth(in.Month)
	applicableHolidays := holiday.ApplicableCount(in.Holidays, in.Employee.Department)

	// 2. Full-attendance snap: once the presence bar for the month is
	// cleared the employee is paid for every calendar day. Business rule
	// carried over as-is; it intentionally pays for days not worked.
	requiredDays := requiredDaysShortMonth
	if totalDaysInMonth == 31 {
		requiredDays = requiredDaysLongMonth
	}
	adjustedRequiredDays := float64(requiredDays - applicableHolidays)
	if presentDays >= adjustedRequiredDays && totalDaysInMonth > 0 {
		presentDays = float64(totalDaysInMonth)
	}

	row.PresentDays = presentDays
	row.HalfDays = halfDays
	row.LeaveDays = leaveDays
	row.AbsentDays = absentDays
	row.PayableDays = timefmt.Round2(presentDays + 0.5*halfDays)
	row.HolidayCount = applicableHolidays
	row.TotalPendingHrs = timefmt.Round4(pendingHrs)

	// 3. Per-day rate.
	monthlySalary := in.Employee.Salary.GrossMonthly
	perDayRate := decimal.Zero
	if totalDaysInMonth > 0 && monthlySalary.IsPositive() {
		perDayRate = monthlySalary.DivRound(decimal.NewFromInt(int64(totalDaysInMonth)), 2)
	}
	row.PerDayRate = perDayRate

	// 4. Day-priced lines.
	row.PresentPay = perDayRate.Mul(decimal.NewFromFloat(presentDays)).Round(2)
	row.HalfDayPay = perDayRate.DivRound(two, 2).Mul(decimal.NewFromFloat(halfDays)).Round(2)
	row.LeavePay = perDayRate.Mul(decimal.NewFromFloat(leaveDays)).Round(2)
	row.HolidayPay = perDayRate.Mul(decimal.NewFromInt(int64(applicableHolidays))).Round(2)

	deriveEarnings(&row, in)
	return row
}

// deriveEarnings runs steps 5–9 of the derivation: proration, statutory
// deductions, loan adjustment and the net figure. It is re-run whenever
// the operator overrides the loan deduction.
func deriveEarnings(row *payroll.Row, in RowInput) {
	monthlySalary := in.Employee.Salary.GrossMonthly

	// 5. Base earnings and proration ratio.
	baseEarnings := row.PresentPay.Add(row.HalfDayPay).Add(row.HolidayPay)
	if in.Rules.LeavePolicy == shift.LeaveAsPayableDay {
		baseEarnings = baseEarnings.Add(row.LeavePay)
	}
	baseEarnings = baseEarnings.Round(2)

	earningRatio := decimal.Zero
	if monthlySalary.IsPositive() {
		earningRatio = baseEarnings.DivRound(monthlySalary, 6)
	}
	row.BaseEarnings = baseEarnings
	row.EarningRatio = earningRatio

	salary := in.Employee.Salary
	row.Basic = salary.Basic.Mul(earningRatio).Round(2)
	row.HRA = salary.HRA.Mul(earningRatio).Round(2)
	row.Conveyance = salary.Conveyance.Mul(earningRatio).Round(2)
	row.OtherAllowance = salary.OtherAllowance.Mul(earningRatio).Round(2)
	row.SpecialAllowance = salary.SpecialAllowance.Mul(earningRatio).Round(2)
	// Paid in full, never prorated.
	row.AdditionalSpecialAllowance = salary.AdditionalSpecialAllowance.Round(2)

	// 6. Gross.
	row.TotalGrossEarnings = baseEarnings.Add(row.AdditionalSpecialAllowance).Round(2)

	// 7. Statutory deductions.
	row.PF = decimal.Zero
	if salary.PFApplicable {
		row.PF = row.Basic.Add(row.Conveyance).Mul(in.Rules.PFRate).Round(2)
	}
	row.ESI = decimal.Zero
	if salary.ESIApplicable && monthlySalary.LessThanOrEqual(in.Rules.ESIWageCeiling) {
		row.ESI = row.TotalGrossEarnings.Mul(in.Rules.ESIRate).Round(2)
	}

	// 8. Loan EMIs, skipping months with an approved or pending skip
	// request; the operator override replaces the computed figure.
	loanDeduction := decimal.Zero
	for _, loan := range in.Loans {
		if loan.Status != payroll.LoanApproved {
			continue
		}
		if loan.SkipsEMIFor(in.Month) {
			continue
		}
		loanDeduction = loanDeduction.Add(loan.EMIAmount)
	}
	if in.LoanOverride != nil {
		loanDeduction = *in.LoanOverride
		row.LoanOverride = in.LoanOverride
	}
	row.LoanDeduction = loanDeduction.Round(2)

	// 9. Totals.
	row.LeaveDeduction = decimal.Zero
	if in.Rules.LeavePolicy == shift.LeaveAsDeduction {
		row.LeaveDeduction = row.LeavePay
	}
	row.TotalDeductions = row.PF.Add(row.ESI).Add(row.LoanDeduction).Add(row.LeaveDeduction).Round(2)
	row.TotalEarnings = row.TotalGrossEarnings
	row.NetPayable = row.TotalEarnings.Sub(row.TotalDeductions).Round(2)
}

func daysInMonth(month string) int {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0
	}
	return t.AddDate(0, 1, -1).Day()
}
