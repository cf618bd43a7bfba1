package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
	"github.com/kilangpay/payslip-backend-go/internal/handler/http/response"
	"github.com/kilangpay/payslip-backend-go/internal/pkg/validator"
)

type PayslipHandler interface {
	ListPayrollRecords(w http.ResponseWriter, r *http.Request)
	DownloadPayslipPDF(w http.ResponseWriter, r *http.Request)
	DownloadBatchPayslipPDF(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService payslip.PayslipService
}

func NewPayslipHandler(payslipService payslip.PayslipService) PayslipHandler {
	return &payslipHandlerImpl{payslipService: payslipService}
}

func (h *payslipHandlerImpl) ListPayrollRecords(w http.ResponseWriter, r *http.Request) {
	filter := payslip.PayslipFilter{Page: 1, Limit: 20}

	q := r.URL.Query()
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid month", nil)
			return
		}
		filter.PeriodMonth = &month
	}
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		filter.PeriodYear = &year
	}
	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("section"); v != "" {
		filter.Section = &v
	}
	if v := q.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	result, err := h.payslipService.ListPayrollRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) DownloadPayslipPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if validator.IsEmpty(id) {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	pdf, filename, err := h.payslipService.GetPayslipPDF(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writePDF(w, pdf, filename)
}

func (h *payslipHandlerImpl) DownloadBatchPayslipPDF(w http.ResponseWriter, r *http.Request) {
	var req payslip.BatchPDFRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	pdf, filename, err := h.payslipService.GetBatchPayslipPDF(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writePDF(w, pdf, filename)
}

func writePDF(w http.ResponseWriter, pdf []byte, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
