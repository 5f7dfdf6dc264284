package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/factoryhr/timepay-backend-go/internal/handler/http/middleware"
	"github.com/factoryhr/timepay-backend-go/internal/pkg/jwt"
)

func NewRouter(jwtService jwt.Service, timesheetHandler TimesheetHandler, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timepay-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/timesheet", func(r chi.Router) {
				r.Post("/days", timesheetHandler.RecordDay)
				r.Get("/days", timesheetHandler.ListDays)
				r.Get("/summary/{employeeID}/{month}", timesheetHandler.MonthlySummary)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/generate", payrollHandler.GeneratePayroll)
				r.Route("/rows", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPayrollRows)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetPayrollRow)
						r.Put("/loan-override", payrollHandler.OverrideLoanDeduction)
						r.Post("/credit", payrollHandler.CreditPayrollRow)
					})
				})
			})
		})
	})
	return r
}
