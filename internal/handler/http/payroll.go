package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/factoryhr/timepay-backend-go/internal/domain/payroll"
	"github.com/factoryhr/timepay-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GeneratePayroll(w http.ResponseWriter, r *http.Request)
	GetPayrollRow(w http.ResponseWriter, r *http.Request)
	ListPayrollRows(w http.ResponseWriter, r *http.Request)
	OverrideLoanDeduction(w http.ResponseWriter, r *http.Request)
	CreditPayrollRow(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GenerateMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll generated", result)
}

func (h *payrollHandlerImpl) GetPayrollRow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll row ID is required", nil)
		return
	}

	result, err := h.payrollService.GetRow(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayrollRows(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		response.BadRequest(w, "month query parameter is required", nil)
		return
	}

	result, err := h.payrollService.ListRows(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) OverrideLoanDeduction(w http.ResponseWriter, r *http.Request) {
	var req payroll.LoanOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.OverrideLoanDeduction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Loan deduction overridden", result)
}

func (h *payrollHandlerImpl) CreditPayrollRow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll row ID is required", nil)
		return
	}

	result, err := h.payrollService.Credit(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll row credited", result)
}
