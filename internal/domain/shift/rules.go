package shift

import "github.com/shopspring/decimal"

// NonWorkingPolicy selects how a non-working day (Leave, Holiday, WeekOff,
// Absent) is priced by the daily calculator. Both variants exist in the
// business and are selected per deployment, never merged.
type NonWorkingPolicy string

const (
	// NonWorkingReportPending zero-fills work and overtime but still
	// reports the full shift target as pending hours.
	NonWorkingReportPending NonWorkingPolicy = "report_pending"
	// NonWorkingZeroFill zero-fills work, overtime and pending hours.
	NonWorkingZeroFill NonWorkingPolicy = "zero_fill"
)

func (p NonWorkingPolicy) Valid() bool {
	return p == NonWorkingReportPending || p == NonWorkingZeroFill
}

// LeavePolicy selects how approved leave days are priced by the payroll
// proration engine.
type LeavePolicy string

const (
	// LeaveAsDeduction prices leave days at the per-day rate and books
	// them as a deduction line. This is the authoritative variant.
	LeaveAsDeduction LeavePolicy = "deduction"
	// LeaveAsPayableDay treats leave days as payable-equivalent days.
	LeaveAsPayableDay LeavePolicy = "payable"
)

func (p LeavePolicy) Valid() bool {
	return p == LeaveAsDeduction || p == LeaveAsPayableDay
}

// Rules is the immutable calculation configuration: the fixed shift
// table, overtime crediting, statutory rates and the selectable pricing
// policies. Construct it once at startup and pass it explicitly into
// every calculation call; it is never mutated after construction, so it
// is safe to share across goroutines.
type Rules struct {
	Profiles map[Type]Profile

	// OvertimeCredit enables the slab-rounded overtime variant of the
	// daily calculator. When false otHrs is always 0.
	OvertimeCredit bool

	NonWorkingPolicy NonWorkingPolicy
	LeavePolicy      LeavePolicy

	// SundayAllowance is the fixed amount accrued per Sunday present,
	// Staff department only.
	SundayAllowance decimal.Decimal
	// OvertimeHourlyRate prices Sunday work+OT hours for non-Staff
	// departments.
	OvertimeHourlyRate decimal.Decimal

	PFRate         decimal.Decimal
	ESIRate        decimal.Decimal
	ESIWageCeiling decimal.Decimal
}

// Profile returns the shift profile for t.
func (r Rules) Profile(t Type) (Profile, bool) {
	p, ok := r.Profiles[t]
	return p, ok
}

// DefaultRules builds the production rule set. The shift table is fixed:
//
//	day    10.0–18.5  lunch 13.0–13.5  target 8.5
//	night  16.0–24.5  lunch 20.0–20.5  target 8.5
//	sunday  9.0–13.0  no lunch         target 4.0
func DefaultRules() Rules {
	return Rules{
		Profiles: map[Type]Profile{
			TypeDay: {
				ID:          TypeDay,
				Start:       10.0,
				End:         18.5,
				LunchStart:  13.0,
				LunchEnd:    13.5,
				TargetHours: 8.5,
				HasLunch:    true,
			},
			TypeNight: {
				ID:          TypeNight,
				Start:       16.0,
				End:         24.5,
				LunchStart:  20.0,
				LunchEnd:    20.5,
				TargetHours: 8.5,
				HasLunch:    true,
			},
			TypeSunday: {
				ID:          TypeSunday,
				Start:       9.0,
				End:         13.0,
				TargetHours: 4.0,
				HasLunch:    false,
			},
		},
		OvertimeCredit:     true,
		NonWorkingPolicy:   NonWorkingReportPending,
		LeavePolicy:        LeaveAsDeduction,
		SundayAllowance:    decimal.NewFromInt(500),
		OvertimeHourlyRate: decimal.NewFromInt(60),
		PFRate:             decimal.NewFromFloat(0.12),
		ESIRate:            decimal.NewFromFloat(0.0075),
		ESIWageCeiling:     decimal.NewFromInt(21000),
	}
}
