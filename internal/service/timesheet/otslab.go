package timesheet

// RoundOvertime quantizes raw extra minutes into credited overtime
// minutes. A 30-minute grace threshold must be cleared before anything
// is credited; below a full hour the credit snaps to 30 or 60. Past the
// first hour, full hours are credited outright and the remainder snaps
// to the nearest quarter hour, so sustained extra work is rewarded while
// minor clock-padding earns nothing.
//
//	29 → 0    30 → 30    44 → 30    45 → 60    59 → 60
//	75 → 75   100 → 105
func RoundOvertime(extraMinutes int) int {
	if extraMinutes < 30 {
		return 0
	}
	if extraMinutes < 45 {
		return 30
	}
	if extraMinutes < 60 {
		return 60
	}

	fullHours := extraMinutes / 60
	remainder := extraMinutes % 60

	// Nearest quarter hour; a remainder within 7 minutes of the lower
	// quarter is dropped.
	bonus := (remainder + 7) / 15 * 15

	return fullHours*60 + bonus
}
