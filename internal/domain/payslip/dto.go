package payslip

import (
	"github.com/kilangpay/payslip-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== LIST DTOs ==========

type PayslipFilter struct {
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Section     *string `json:"section,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

type PayrollRecordResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	JobType      string          `json:"job_type"`
	Section      string          `json:"section"`
	PeriodMonth  int             `json:"period_month"`
	PeriodYear   int             `json:"period_year"`
	GrossPay     decimal.Decimal `json:"gross_pay"`
	NetPay       decimal.Decimal `json:"net_pay"`
	IsGrouped    bool            `json:"is_grouped"`
	ItemCount    int             `json:"item_count"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

// ========== PDF DTOs ==========

// StaffDetails overrides the slip header identity when the caller has already
// resolved it; otherwise the service looks it up from the employee repository.
type StaffDetails struct {
	Name    string `json:"name"`
	ICNo    string `json:"ic_no"`
	JobName string `json:"job_name"`
	Section string `json:"section"`
}

type BatchPDFRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *BatchPDFRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be a four-digit year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
