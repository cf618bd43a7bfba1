package response

import (
	"errors"
	"net/http"

	"github.com/kilangpay/payslip-backend-go/internal/domain/employee"
	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
	"github.com/kilangpay/payslip-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payslip domain errors
	case errors.Is(err, payslip.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payslip.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, payslip.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payslip.ErrEmptyBatch):
		NotFound(w, "No payroll records in the requested period")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
