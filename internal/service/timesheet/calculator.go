package timesheet

import (
	"math"

	"github.com/factoryhr/timepay-backend-go/internal/domain/attendance"
	"github.com/factoryhr/timepay-backend-go/internal/domain/shift"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/timefmt"
)

// lunchGraceHours is the portion of lunch that never reduces work time.
const lunchGraceHours = 0.5

// Calculator turns one day's punches into work, overtime and pending
// hours under a fixed rule set. It holds no mutable state and is safe
// for concurrent use.
type Calculator struct {
	rules shift.Rules
}

func NewCalculator(rules shift.Rules) *Calculator {
	return &Calculator{rules: rules}
}

// DayInput carries the raw punch texts for one (employee, date). Nil
// pointers and unparseable text both mean "no time recorded".
type DayInput struct {
	Status   attendance.Status
	Shift    shift.Type
	CheckIn  *string
	LunchIn  *string
	LunchOut *string
	CheckOut *string
}

type DayResult struct {
	WorkHrs    float64
	OtHrs      float64
	PendingHrs float64
}

// ComputeDay derives the day's figures:
//
//   - non-working statuses short-circuit per the configured policy
//   - missing or inverted punches yield zero work and full pending
//   - night-shift checkouts (and lunch-outs) at or before their opening
//     punch are corrected by +24h for the midnight crossing
//   - only lunch beyond the first 30 minutes reduces work time
//   - work is capped at the shift target; the shortfall below target is
//     pending; the excess above target feeds the overtime slab rounder
//     when overtime crediting is enabled
//
// All intermediate hour figures are rounded to 4 decimals.
func (c *Calculator) ComputeDay(in DayInput) (DayResult, error) {
	profile, ok := c.rules.Profile(in.Shift)
	if !ok {
		return DayResult{}, attendance.ErrUnknownShift
	}
	target := profile.TargetHours

	if !in.Status.Working() {
		if c.rules.NonWorkingPolicy == shift.NonWorkingZeroFill {
			return DayResult{}, nil
		}
		return DayResult{PendingHrs: target}, nil
	}

	checkIn, inOK := parsePunch(in.CheckIn)
	checkOut, outOK := parsePunch(in.CheckOut)
	if !inOK || !outOK {
		return DayResult{PendingHrs: target}, nil
	}

	if checkOut <= checkIn {
		if !profile.CrossesMidnight() {
			// No recorded exit that makes sense; the employee may simply
			// have missed the punch. Zero work, full pending, no error.
			return DayResult{PendingHrs: target}, nil
		}
		checkOut += 24
	}

	total := timefmt.Round4(checkOut - checkIn)

	extraLunch := 0.0
	if profile.HasLunch {
		lunchIn, liOK := parsePunch(in.LunchIn)
		lunchOut, loOK := parsePunch(in.LunchOut)
		if liOK && loOK {
			if lunchOut <= lunchIn && profile.CrossesMidnight() {
				lunchOut += 24
			}
			actual := timefmt.Round4(lunchOut - lunchIn)
			if actual > lunchGraceHours {
				extraLunch = timefmt.Round4(actual - lunchGraceHours)
			}
		}
	}

	net := timefmt.Round4(total - extraLunch)
	if net < 0 {
		net = 0
	}

	result := DayResult{}
	if net < target {
		result.WorkHrs = net
		result.PendingHrs = timefmt.Round4(target - net)
	} else {
		result.WorkHrs = target
		if c.rules.OvertimeCredit && net > target {
			extraMinutes := int(math.Round((net - target) * 60))
			result.OtHrs = timefmt.Round4(float64(RoundOvertime(extraMinutes)) / 60.0)
		}
	}

	return result, nil
}

func parsePunch(s *string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	return timefmt.ParseClock(*s)
}
