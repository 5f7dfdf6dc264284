package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/domain/employee"
	"github.com/factoryhr/timepay-backend-go/internal/domain/holiday"
	"github.com/factoryhr/timepay-backend-go/internal/domain/payroll"
	"github.com/factoryhr/timepay-backend-go/internal/domain/shift"
)

type fakePayrollRepo struct {
	rows   map[string]payroll.Row
	nextID int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{rows: make(map[string]payroll.Row)}
}

func (f *fakePayrollRepo) Upsert(ctx context.Context, row payroll.Row) (payroll.Row, error) {
	for id, existing := range f.rows {
		if existing.EmployeeID == row.EmployeeID && existing.Month == row.Month {
			if existing.Status == payroll.StatusCredited {
				return payroll.Row{}, payroll.ErrAlreadyCredited
			}
			row.ID = id
			row.Status = existing.Status
			row.CreatedAt = existing.CreatedAt
			row.UpdatedAt = time.Now()
			f.rows[id] = row
			return row, nil
		}
	}
	f.nextID++
	row.ID = fmt.Sprintf("row-%d", f.nextID)
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.Row, error) {
	row, ok := f.rows[id]
	if !ok {
		return payroll.Row{}, payroll.ErrRowNotFound
	}
	return row, nil
}

func (f *fakePayrollRepo) GetByEmployeeMonth(ctx context.Context, employeeID string, month string) (payroll.Row, error) {
	for _, row := range f.rows {
		if row.EmployeeID == employeeID && row.Month == month {
			return row, nil
		}
	}
	return payroll.Row{}, payroll.ErrRowNotFound
}

func (f *fakePayrollRepo) ListByMonth(ctx context.Context, month string) ([]payroll.Row, error) {
	var out []payroll.Row
	for _, row := range f.rows {
		if row.Month == month {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) Credit(ctx context.Context, id string) error {
	row, ok := f.rows[id]
	if !ok {
		return payroll.ErrRowNotFound
	}
	if row.Status != payroll.StatusPending {
		return payroll.ErrAlreadyCredited
	}
	now := time.Now()
	row.Status = payroll.StatusCredited
	row.CreditedAt = &now
	f.rows[id] = row
	return nil
}

type fakeLoanRepo struct {
	loans map[string][]payroll.Loan
}

func (f *fakeLoanRepo) GetByEmployee(ctx context.Context, employeeID string) ([]payroll.Loan, error) {
	return f.loans[employeeID], nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	days map[string][]attendance.Day // keyed employeeID|month
}

func attKey(employeeID, month string) string { return employeeID + "|" + month }

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, day attendance.Day) (attendance.Day, error) {
	return day, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Day, error) {
	return attendance.Day{}, attendance.ErrDayNotFound
}

func (f *fakeAttendanceRepo) ListByEmployeeMonth(ctx context.Context, employeeID string, month string) ([]attendance.Day, error) {
	return f.days[attKey(employeeID, month)], nil
}

func (f *fakeAttendanceRepo) ListEmployeesWithDays(ctx context.Context, month string) ([]string, error) {
	return nil, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) GetByMonth(ctx context.Context, month string) ([]holiday.Holiday, error) {
	return f.holidays, nil
}

type fakeApprovalRepo struct {
	statuses map[string]attendance.ApprovalStatus
}

func (f *fakeApprovalRepo) Get(ctx context.Context, employeeID string, month string) (attendance.ApprovalStatus, error) {
	status, ok := f.statuses[attKey(employeeID, month)]
	if !ok {
		return attendance.ApprovalPending, nil
	}
	return status, nil
}

type payrollFixture struct {
	svc         payroll.PayrollService
	payrollRepo *fakePayrollRepo
	approvals   *fakeApprovalRepo
	attendance  *fakeAttendanceRepo
	loans       *fakeLoanRepo
	employees   *fakeEmployeeRepo
	txCalls     int
}

func newPayrollFixture() *payrollFixture {
	f := &payrollFixture{
		payrollRepo: newFakePayrollRepo(),
		approvals:   &fakeApprovalRepo{statuses: make(map[string]attendance.ApprovalStatus)},
		attendance:  &fakeAttendanceRepo{days: make(map[string][]attendance.Day)},
		loans:       &fakeLoanRepo{loans: make(map[string][]payroll.Loan)},
		employees: &fakeEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": testEmployee(),
		}},
	}

	f.svc = NewPayrollService(
		func(ctx context.Context, fn func(ctx context.Context) error) error {
			f.txCalls++
			return fn(ctx)
		},
		f.payrollRepo,
		f.loans,
		f.employees,
		f.attendance,
		&fakeHolidayRepo{},
		f.approvals,
		shift.DefaultRules(),
	)

	return f
}

func (f *payrollFixture) seedAttendance(t *testing.T, month string, present int) {
	t.Helper()
	f.attendance.days[attKey("emp-1", month)] = monthDays(t, month, repeatStatus(attendance.StatusPresent, present)...)
}

func TestGenerateMonth(t *testing.T) {
	f := newPayrollFixture()
	f.seedAttendance(t, "2026-04", 26)

	ctx := context.Background()
	rows, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "emp-1", rows[0].EmployeeID)
	assert.Equal(t, 30.0, rows[0].PresentDays)
	assert.Equal(t, string(payroll.StatusPending), rows[0].Status)
}

func TestGenerateMonthUsesOneTransactionPerBatch(t *testing.T) {
	f := newPayrollFixture()
	extra := testEmployee()
	extra.ID = "emp-2"
	extra.Code = "E002"
	f.employees.employees["emp-2"] = extra
	f.seedAttendance(t, "2026-04", 26)

	rows, err := f.svc.GenerateMonth(context.Background(), payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, f.txCalls, "the batch must share a single transaction")
}

func TestGenerateMonthRejectsInactiveEmployee(t *testing.T) {
	f := newPayrollFixture()
	inactive := testEmployee()
	inactive.ID = "emp-2"
	inactive.Code = "E002"
	inactive.IsActive = false
	f.employees.employees["emp-2"] = inactive
	f.seedAttendance(t, "2026-04", 26)
	ctx := context.Background()

	_, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{
		Month:       "2026-04",
		EmployeeIDs: []string{"emp-2"},
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)

	// Without explicit IDs the inactive employee is simply skipped.
	rows, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "emp-1", rows[0].EmployeeID)
}

func TestGenerateMonthIsIdempotent(t *testing.T) {
	f := newPayrollFixture()
	f.seedAttendance(t, "2026-04", 26)
	ctx := context.Background()

	first, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)
	second, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID, "regeneration must replace, not duplicate")
	assert.True(t, second[0].NetPayable.Equal(first[0].NetPayable))
}

func TestGenerateMonthSkipsCreditedRows(t *testing.T) {
	f := newPayrollFixture()
	f.seedAttendance(t, "2026-04", 26)
	ctx := context.Background()

	rows, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)
	f.approvals.statuses[attKey("emp-1", "2026-04")] = attendance.ApprovalAccepted
	_, err = f.svc.Credit(ctx, rows[0].ID)
	require.NoError(t, err)

	regenerated, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)
	assert.Empty(t, regenerated, "credited rows must be left untouched")

	stored, err := f.payrollRepo.GetByID(ctx, rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusCredited, stored.Status)
}

func TestGenerateMonthPreservesLoanOverride(t *testing.T) {
	f := newPayrollFixture()
	f.seedAttendance(t, "2026-04", 26)
	f.loans.loans["emp-1"] = []payroll.Loan{
		{ID: "l1", Status: payroll.LoanApproved, EMIAmount: decimal.NewFromInt(1500)},
	}
	ctx := context.Background()

	rows, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)

	overridden, err := f.svc.OverrideLoanDeduction(ctx, payroll.LoanOverrideRequest{
		ID:     rows[0].ID,
		Amount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.True(t, overridden.LoanDeduction.Equal(decimal.NewFromInt(500)))

	regenerated, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)
	require.Len(t, regenerated, 1)
	assert.True(t, regenerated[0].LoanDeduction.Equal(decimal.NewFromInt(500)),
		"regeneration must keep the operator override, got %s", regenerated[0].LoanDeduction)
}

func TestOverrideLoanDeductionRerunsDerivation(t *testing.T) {
	f := newPayrollFixture()
	f.seedAttendance(t, "2026-04", 26)
	f.loans.loans["emp-1"] = []payroll.Loan{
		{ID: "l1", Status: payroll.LoanApproved, EMIAmount: decimal.NewFromInt(1500)},
	}
	ctx := context.Background()

	rows, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)
	netBefore := rows[0].NetPayable

	overridden, err := f.svc.OverrideLoanDeduction(ctx, payroll.LoanOverrideRequest{
		ID:     rows[0].ID,
		Amount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	// 1000 less deducted means 1000 more payable.
	assert.True(t, overridden.NetPayable.Equal(netBefore.Add(decimal.NewFromInt(1000))),
		"net before %s, after %s", netBefore, overridden.NetPayable)
}

func TestOverrideLoanDeductionRejectsCreditedRow(t *testing.T) {
	f := newPayrollFixture()
	f.seedAttendance(t, "2026-04", 26)
	ctx := context.Background()

	rows, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)
	f.approvals.statuses[attKey("emp-1", "2026-04")] = attendance.ApprovalAccepted
	_, err = f.svc.Credit(ctx, rows[0].ID)
	require.NoError(t, err)

	_, err = f.svc.OverrideLoanDeduction(ctx, payroll.LoanOverrideRequest{
		ID:     rows[0].ID,
		Amount: decimal.NewFromInt(500),
	})
	assert.ErrorIs(t, err, payroll.ErrAlreadyCredited)
}

func TestCreditRequiresAcceptedAttendance(t *testing.T) {
	f := newPayrollFixture()
	f.seedAttendance(t, "2026-04", 26)
	ctx := context.Background()

	rows, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)

	for _, status := range []attendance.ApprovalStatus{attendance.ApprovalPending, attendance.ApprovalRejected} {
		f.approvals.statuses[attKey("emp-1", "2026-04")] = status
		_, err = f.svc.Credit(ctx, rows[0].ID)
		assert.ErrorIs(t, err, payroll.ErrAttendanceNotAccepted, string(status))

		stored, err := f.payrollRepo.GetByID(ctx, rows[0].ID)
		require.NoError(t, err)
		assert.Equal(t, payroll.StatusPending, stored.Status, "rejected credit must not change status")
	}
}

func TestCreditIsOneWay(t *testing.T) {
	f := newPayrollFixture()
	f.seedAttendance(t, "2026-04", 26)
	ctx := context.Background()

	rows, err := f.svc.GenerateMonth(ctx, payroll.GenerateRequest{Month: "2026-04"})
	require.NoError(t, err)
	f.approvals.statuses[attKey("emp-1", "2026-04")] = attendance.ApprovalAccepted

	credited, err := f.svc.Credit(ctx, rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusCredited), credited.Status)
	assert.NotNil(t, credited.CreditedAt)

	_, err = f.svc.Credit(ctx, rows[0].ID)
	assert.ErrorIs(t, err, payroll.ErrAlreadyCredited)
}

func TestCreditUnknownRow(t *testing.T) {
	f := newPayrollFixture()
	_, err := f.svc.Credit(context.Background(), "missing")
	assert.ErrorIs(t, err, payroll.ErrRowNotFound)
}
