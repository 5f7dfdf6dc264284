package holiday

import (
	"time"

	"github.com/factoryhr/timepay-backend-go/internal/domain/employee"
)

// Holiday applies either to every department (empty Departments) or to
// the listed ones only.
type Holiday struct {
	ID          string
	Date        time.Time
	Name        string
	Departments []employee.Department
	CreatedAt   time.Time
}

// AppliesTo reports whether dept observes this holiday.
func (h Holiday) AppliesTo(dept employee.Department) bool {
	if len(h.Departments) == 0 {
		return true
	}
	for _, d := range h.Departments {
		if d == dept {
			return true
		}
	}
	return false
}

// ApplicableCount counts holidays in the list observed by dept.
func ApplicableCount(holidays []Holiday, dept employee.Department) int {
	count := 0
	for _, h := range holidays {
		if h.AppliesTo(dept) {
			count++
		}
	}
	return count
}
