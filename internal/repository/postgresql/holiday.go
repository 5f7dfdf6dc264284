package postgresql

import (
	"context"
	"fmt"

	"github.com/factoryhr/timepay-backend-go/internal/domain/employee"
	"github.com/factoryhr/timepay-backend-go/internal/domain/holiday"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// GetByMonth implements holiday.HolidayRepository. An empty departments
// array means the holiday applies to all departments.
func (h *holidayRepository) GetByMonth(ctx context.Context, month string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, date, name, departments, created_at
		FROM holidays
		WHERE to_char(date, 'YYYY-MM') = $1
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hol holiday.Holiday
		var departments []string
		if err := rows.Scan(&hol.ID, &hol.Date, &hol.Name, &departments, &hol.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		for _, d := range departments {
			hol.Departments = append(hol.Departments, employee.Department(d))
		}
		holidays = append(holidays, hol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holidays: %w", err)
	}

	return holidays, nil
}
