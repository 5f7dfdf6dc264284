package timefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseClock parses a 12-hour clock string like "9:05 AM" into decimal
// hours in [0, 24). The second return value is false when the input is
// empty or malformed; callers treat that as "no time recorded".
func ParseClock(s string) (float64, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0, false
	}

	meridiem := parts[1]
	if meridiem != "AM" && meridiem != "PM" {
		return 0, false
	}

	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return 0, false
	}

	hour, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil {
		return 0, false
	}

	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, false
	}

	if hour == 12 {
		hour = 0
	}
	if meridiem == "PM" {
		hour += 12
	}

	return float64(hour) + float64(minute)/60.0, true
}

// FormatClock renders decimal hours in the stored punch convention
// "<H>:<MM> <AM|PM>" with no leading zero on the hour, e.g. "9:05 AM".
// Round-trips with ParseClock for any valid punch string.
func FormatClock(hours float64) string {
	hours = Sanitize(hours)

	h := int(hours)
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	h = ((h % 24) + 24) % 24

	meridiem := "AM"
	if h >= 12 {
		meridiem = "PM"
	}

	display := h % 12
	if display == 0 {
		display = 12
	}

	return fmt.Sprintf("%d:%02d %s", display, m, meridiem)
}

// FormatHours renders decimal hours as "H:MM". A 59.6-minute fraction
// carries into the hour rather than rendering ":60".
func FormatHours(hours float64) string {
	hours = Sanitize(hours)

	neg := hours < 0
	if neg {
		hours = -hours
	}

	h := int(hours)
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}

	if neg {
		return fmt.Sprintf("-%d:%02d", h, m)
	}
	return fmt.Sprintf("%d:%02d", h, m)
}

// FormatHoursSigned is FormatHours with an explicit "+" on non-negative
// values, used for overtime columns.
func FormatHoursSigned(hours float64) string {
	s := FormatHours(hours)
	if !strings.HasPrefix(s, "-") {
		return "+" + s
	}
	return s
}

// Round4 rounds to 4 decimal places. Intermediate hour figures in the
// engine are kept at this precision.
func Round4(v float64) float64 {
	return math.Round(Sanitize(v)*10000) / 10000
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(Sanitize(v)*100) / 100
}

// Sanitize coerces NaN and infinities to 0 so malformed arithmetic can
// never reach a stored record.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
