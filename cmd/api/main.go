package main

import (
	"fmt"
	"net/http"

	"github.com/factoryhr/timepay-backend-go/internal/config"
	appHTTP "github.com/factoryhr/timepay-backend-go/internal/handler/http"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/cron"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/database"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/jwt"
	"github.com/factoryhr/timepay-backend-go/internal/repository/postgresql"
	payrollService "github.com/factoryhr/timepay-backend-go/internal/service/payroll"
	timesheetService "github.com/factoryhr/timepay-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	approvalRepo := postgresql.NewApprovalRepository(db)
	loanRepo := postgresql.NewLoanRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	rules := cfg.Rules()

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	timesheetSvc := timesheetService.NewTimesheetService(
		attendanceRepo,
		summaryRepo,
		leaveRepo,
		employeeRepo,
		rules,
	)
	payrollSvc := payrollService.NewPayrollService(
		postgresql.NewTxRunner(db),
		payrollRepo,
		loanRepo,
		employeeRepo,
		attendanceRepo,
		holidayRepo,
		approvalRepo,
		rules,
	)

	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(jwtService, timesheetHandler, payrollHandler)

	scheduler := cron.NewScheduler()
	cron.NewSummaryJobs(timesheetSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
