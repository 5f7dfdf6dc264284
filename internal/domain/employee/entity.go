package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Department drives Sunday compensation and holiday applicability.
type Department string

const (
	DepartmentStaff        Department = "Staff"
	DepartmentWorker       Department = "Worker"
	DepartmentOtherWorkers Department = "OtherWorkers"
)

func (d Department) Valid() bool {
	switch d {
	case DepartmentStaff, DepartmentWorker, DepartmentOtherWorkers:
		return true
	}
	return false
}

// SalaryStructure is the monthly salary breakup, read-only to the engine.
type SalaryStructure struct {
	Basic                      decimal.Decimal
	HRA                        decimal.Decimal
	Conveyance                 decimal.Decimal
	OtherAllowance             decimal.Decimal
	SpecialAllowance           decimal.Decimal
	AdditionalSpecialAllowance decimal.Decimal
	GrossMonthly               decimal.Decimal
	PFApplicable               bool
	ESIApplicable              bool
}

type Employee struct {
	ID         string
	Code       string
	Name       string
	Department Department
	Salary     SalaryStructure
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
